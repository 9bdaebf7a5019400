package status

import (
	"errors"
	"net/http"

	"github.com/carson-networks/expense-tracker/internal/logging"
)

// Handler answers liveness probes. It never touches storage.
type Handler struct{}

func NewHandler() Handler {
	return Handler{}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	logData.AddData("remoteAddr", req.RemoteAddr)
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
