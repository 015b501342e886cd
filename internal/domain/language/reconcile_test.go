package language

import "testing"

func TestReconcile(t *testing.T) {
	pair := Pair{Primary: Ukrainian, Secondary: English}

	tests := []struct {
		name  string
		audio Language
		text  Language
		want  Language
	}{
		{
			name:  "no text signal returns audio unchanged",
			audio: Russian,
			text:  "",
			want:  Russian,
		},
		{
			name:  "both signals agree",
			audio: Ukrainian,
			text:  Ukrainian,
			want:  Ukrainian,
		},
		{
			name:  "only text signal inside pair wins",
			audio: Russian,
			text:  Ukrainian,
			want:  Ukrainian,
		},
		{
			name:  "only audio signal inside pair wins",
			audio: Ukrainian,
			text:  Georgian,
			want:  Ukrainian,
		},
		{
			name:  "neither inside pair prefers text signal",
			audio: Russian,
			text:  Georgian,
			want:  Georgian,
		},
		{
			name:  "both inside pair but disagree prefers text signal",
			audio: English,
			text:  Ukrainian,
			want:  Ukrainian,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.audio, tt.text, pair)
			if got != tt.want {
				t.Errorf("Reconcile(%q, %q) = %q, want %q", tt.audio, tt.text, got, tt.want)
			}
		})
	}
}

func TestReconcile_Identity(t *testing.T) {
	pair := Pair{Primary: Ukrainian, Secondary: English}

	for _, l := range All() {
		if got := Reconcile(l, "", pair); got != l {
			t.Errorf("Reconcile(%q, absent) = %q, want %q", l, got, l)
		}
		if got := Reconcile(l, l, pair); got != l {
			t.Errorf("Reconcile(%q, %q) = %q, want %q", l, l, got, l)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	pair := Pair{Primary: Ukrainian, Secondary: English}

	tests := []struct {
		name              string
		source            Language
		wantTarget        Language
		wantLowConfidence bool
	}{
		{
			name:       "primary source resolves to secondary",
			source:     Ukrainian,
			wantTarget: English,
		},
		{
			name:       "secondary source resolves to primary",
			source:     English,
			wantTarget: Ukrainian,
		},
		{
			name:              "source outside pair defaults to primary with low confidence",
			source:            Georgian,
			wantTarget:        Ukrainian,
			wantLowConfidence: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, low := ResolveTarget(tt.source, pair)
			if target != tt.wantTarget {
				t.Errorf("ResolveTarget(%q) target = %q, want %q", tt.source, target, tt.wantTarget)
			}
			if low != tt.wantLowConfidence {
				t.Errorf("ResolveTarget(%q) lowConfidence = %v, want %v", tt.source, low, tt.wantLowConfidence)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{input: "uk", want: Ukrainian},
		{input: "EN", want: English},
		{input: " ka ", want: Georgian},
		{input: "de", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFromWhisper(t *testing.T) {
	tests := []struct {
		input  string
		want   Language
		wantOK bool
	}{
		{input: "ukrainian", want: Ukrainian, wantOK: true},
		{input: "English", want: English, wantOK: true},
		{input: "id", want: Indonesian, wantOK: true},
		{input: "klingon", want: Default, wantOK: false},
		{input: "", want: Default, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := FromWhisper(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FromWhisper(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPairValidate(t *testing.T) {
	tests := []struct {
		name    string
		pair    Pair
		wantErr bool
	}{
		{name: "valid pair", pair: Pair{Primary: Ukrainian, Secondary: English}},
		{name: "equal members", pair: Pair{Primary: English, Secondary: English}, wantErr: true},
		{name: "unsupported primary", pair: Pair{Primary: "de", Secondary: English}, wantErr: true},
		{name: "unsupported secondary", pair: Pair{Primary: Ukrainian, Secondary: "xx"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pair.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPairSwap(t *testing.T) {
	p := Pair{Primary: Ukrainian, Secondary: English}
	swapped := p.Swap()
	if swapped.Primary != English || swapped.Secondary != Ukrainian {
		t.Errorf("Swap() = %+v", swapped)
	}
	if swapped.Swap() != p {
		t.Error("Swap() twice should restore the original pair")
	}
}
