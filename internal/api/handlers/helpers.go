package handlers

import (
	"net/http"

	"github.com/voxlate/voxlate/internal/pkg/errors"
	"github.com/voxlate/voxlate/internal/pkg/utils"
)

// writeServiceError maps a service-layer error onto the HTTP response,
// preserving AppError codes and hiding everything else behind a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("Internal server error", err))
}
