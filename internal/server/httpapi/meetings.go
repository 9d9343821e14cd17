package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/smartmeet/internal/common"
)

const (
	defaultMeetingsLimit = 20
	defaultTasksLimit    = 50
	maxLimit             = 100
)

var taskStatuses = map[string]bool{
	"pending":     true,
	"in_progress": true,
	"completed":   true,
	"cancelled":   true,
}

// pagination reads skip and limit from the query string.
func pagination(r *http.Request, defLimit int) (skip, limit int, errs []fieldError) {
	q := r.URL.Query()
	skip, limit = 0, defLimit

	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, invalidField("query", "skip", "Input should be a non-negative integer"))
		} else {
			skip = n
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			errs = append(errs, invalidField("query", "limit", "Input should be between 1 and 100"))
		} else {
			limit = n
		}
	}
	return skip, limit, errs
}

func (h *handlers) listMeetings(w http.ResponseWriter, r *http.Request) {
	skip, limit, errs := pagination(r, defaultMeetingsLimit)
	if len(errs) > 0 {
		writeValidation(w, errs...)
		return
	}

	user := userFromContext(r.Context())
	list, err := h.meetings.List(r.Context(), user.ID, skip, limit)
	if err != nil {
		h.internalError(w, r, "list meetings", err)
		return
	}

	out := make([]meetingResponse, 0, len(list))
	for i := range list {
		out = append(out, toMeetingResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) createMeeting(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeValidation(w, missingField("body", "title"))
		return
	}

	user := userFromContext(r.Context())
	m, err := h.meetings.Create(r.Context(), user.ID, title, r.FormValue("description"))
	if err != nil {
		h.internalError(w, r, "create meeting", err)
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponse(m))
}

func (h *handlers) getMeeting(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	m, err := h.meetings.Get(r.Context(), user.ID, mux.Vars(r)["id"])
	if errors.Is(err, common.ErrorNotFound) {
		writeDetail(w, http.StatusNotFound, "Meeting not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "get meeting", err)
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponse(m))
}

func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	skip, limit, errs := pagination(r, defaultTasksLimit)
	status := r.URL.Query().Get("status")
	if status != "" && !taskStatuses[status] {
		errs = append(errs, invalidField("query", "status", "Input should be 'pending', 'in_progress', 'completed' or 'cancelled'"))
	}
	if len(errs) > 0 {
		writeValidation(w, errs...)
		return
	}

	user := userFromContext(r.Context())
	items, err := h.meetings.ActionItems(r.Context(), user.ID, status, skip, limit)
	if err != nil {
		h.internalError(w, r, "list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, toActionItemResponses(items))
}

func (h *handlers) meetingTasks(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	items, err := h.meetings.MeetingActionItems(r.Context(), user.ID, mux.Vars(r)["id"])
	if errors.Is(err, common.ErrorNotFound) {
		writeDetail(w, http.StatusNotFound, "Meeting not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "meeting tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, toActionItemResponses(items))
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(r.Context(), op, "error", err)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}
