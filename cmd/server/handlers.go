package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/flowvault/flowvault/pkg/audit"
	"github.com/flowvault/flowvault/pkg/logger"
	"github.com/flowvault/flowvault/pkg/notifier"
	"github.com/flowvault/flowvault/pkg/registry"
	"github.com/flowvault/flowvault/pkg/requestid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statsResponse is the payload of GET /stats.
type statsResponse struct {
	Connections int `json:"connections"`
	Admins      int `json:"admins"`
	Users       int `json:"users"`
}

func handleStats(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, statsResponse{
			Connections: reg.Count(),
			Admins:      reg.CountByRole(registry.RoleAdmin),
			Users:       reg.CountByRole(registry.RoleUser),
		})
	}
}

// dispatchRequest is the wire form of a notification intent.
type dispatchRequest struct {
	TargetUserID string            `json:"target_user_id,omitempty"`
	TargetRoom   string            `json:"target_room,omitempty"`
	Kind         notifier.Kind     `json:"kind"`
	Priority     notifier.Priority `json:"priority,omitempty"`
	Payload      json.RawMessage   `json:"payload"`
}

func handleDispatch(dispatcher *notifier.Dispatcher, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dispatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		payload, err := notifier.DecodePayload(req.Kind, req.Payload)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}

		priority := req.Priority
		if priority == "" {
			priority = notifier.PriorityMedium
		}

		intent := notifier.Intent{
			TargetUserID: req.TargetUserID,
			TargetRoom:   req.TargetRoom,
			Kind:         req.Kind,
			Priority:     priority,
			Payload:      payload,
		}

		outcome, err := dispatcher.Dispatch(r.Context(), intent)
		if err != nil {
			switch {
			case errors.Is(err, notifier.ErrAmbiguousAddressing),
				errors.Is(err, notifier.ErrInvalidIntent):
				writeError(w, http.StatusUnprocessableEntity, err)
			default:
				log.Error("dispatch failed", logger.Error(err), requestid.Attr(r.Context()))
				writeError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, outcome)
	}
}

func handleAuditList(recorder *audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := audit.Filter{
			UserID:        q.Get("user_id"),
			Kind:          q.Get("kind"),
			DeliveredOnly: q.Get("delivered") == "true",
			Limit:         100,
		}
		if raw := q.Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				filter.Limit = n
			}
		}
		if raw := q.Get("since"); raw != "" {
			since, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			filter.Since = since
		}

		entries, err := recorder.List(r.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if entries == nil {
			entries = []audit.Entry{}
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
