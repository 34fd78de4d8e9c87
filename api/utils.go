package api

import (
	"encoding/json"
	"net/http"

	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

func sendJSON(res http.ResponseWriter, value any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(res).Encode(value); err != nil {
		log.ErrorCause(err, "failed to serialize response")
	}
}

func sendClientError(res http.ResponseWriter, err error, message string) {
	sendErrorWithStatus(res, err, message, http.StatusBadRequest)
}

func sendServerError(res http.ResponseWriter, err error, message string) {
	sendErrorWithStatus(res, err, message, http.StatusInternalServerError)
}

func sendErrorWithStatus(res http.ResponseWriter, err error, message string, statusCode int) {
	if err != nil {
		if message == "" {
			message = err.Error()
		} else {
			message = wrap.Error(err, message).Error()
		}
	}

	if statusCode == http.StatusInternalServerError {
		log.ErrorCause(err, message)
	}

	http.Error(res, message, statusCode)
}
