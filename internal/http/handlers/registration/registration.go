// Package registration contains all HTTP handlers for the Registration
// resource.
//
// Every exported function is a factory: it receives its dependencies once
// at startup and returns the http.HandlerFunc the router calls on every
// request.
//
//	r.Post("/api/register", registration.New(storage, metrics))
package registration

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/registration-api/internal/http/middleware"
	"github.com/aanand-mishra/registration-api/internal/storage"
	"github.com/aanand-mishra/registration-api/internal/types"
	"github.com/aanand-mishra/registration-api/internal/utils/response"
	"github.com/aanand-mishra/registration-api/internal/validation"
)

// Recorder receives business events. *metrics.Metrics satisfies it.
type Recorder interface {
	RegistrationCreated()
	RegistrationDeleted()
	ValidationFailed(reason string)
}

// Client-facing messages.
const (
	msgRegistered   = "registration successful! we will contact you soon"
	msgDeleted      = "registration deleted"
	msgCreateFailed = "registration failed, please try again later"
	msgQueryFailed  = "query failed"
	msgDeleteFailed = "delete failed"
	msgStatsFailed  = "statistics query failed"
)

// Upper bound on a submission body; the form has a handful of short fields.
const maxBodyBytes = 1 << 20

// validate is shared: it caches struct metadata across requests.
var validate = validation.New()

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/register
//
// Request body (JSON or form-encoded):
//
//	{ "name": "Lin", "age": 16, "phone": "0912...", "email": "lin@example.com",
//	  "dance_style": "hip-hop", "experience": "2 years", "message": "hi" }
//
// Success response (200 OK):
//
//	{ "success": true, "message": "...", "registrationId": 1 }
//
// Error responses:
//
//	400 Bad Request  malformed body, missing field, age out of range, bad email
//	500 Internal     database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(r)
		log.Info("submitting a registration")

		// ── Step 1: Decode the body ───────────────────────────────────
		req, err := decodeRequest(w, r)
		if err != nil {
			log.Warn("invalid registration body", slog.String("error", err.Error()))
			msg := response.MsgInvalidBody
			if errors.Is(err, types.ErrInvalidAge) {
				msg = err.Error()
			}
			_ = response.WriteJSON(w, http.StatusBadRequest, response.Error(msg))
			return
		}

		// ── Step 2: Validate; nothing touches the database on failure ─
		if err := validation.Struct(validate, req); err != nil {
			var verr *validation.Error
			if errors.As(err, &verr) {
				rec.ValidationFailed(string(verr.Reason))
				log.Info("registration rejected",
					slog.String("reason", string(verr.Reason)),
					slog.String("field", verr.Field))
				_ = response.WriteJSON(w, http.StatusBadRequest, response.Error(verr.Error()))
				return
			}
			log.Error("validator failed", slog.String("error", err.Error()))
			_ = response.WriteJSON(w, http.StatusInternalServerError, response.Error(msgCreateFailed))
			return
		}

		// ── Step 3: Persist ───────────────────────────────────────────
		lastID, err := store.CreateRegistration(r.Context(), req)
		if err != nil {
			log.Error("error creating registration", slog.String("error", err.Error()))
			_ = response.WriteJSON(w, http.StatusInternalServerError, response.Error(msgCreateFailed))
			return
		}

		rec.RegistrationCreated()
		log.Info("registration created", slog.Int64("id", lastID))

		_ = response.WriteJSON(w, http.StatusOK, response.Response{
			Success:        true,
			Message:        msgRegistered,
			RegistrationID: lastID,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/registrations
//
//	{ "success": true, "data": [ {...newest...}, ..., {...oldest...} ] }
//
// Returns "data": [] (not null) when there are no registrations.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(r)
		log.Info("getting all registrations")

		registrations, err := store.GetRegistrations(r.Context())
		if err != nil {
			log.Error("error getting registrations", slog.String("error", err.Error()))
			_ = response.WriteJSON(w, http.StatusInternalServerError, response.Error(msgQueryFailed))
			return
		}

		_ = response.WriteJSON(w, http.StatusOK, response.OK(registrations))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/registrations/{id}
//
// An id that is not an integer cannot match any row, so it is reported as
// 404 like any other unknown id.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		log := requestLogger(r).With(slog.String("id", id))
		log.Info("getting a registration")

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			_ = response.WriteJSON(w, http.StatusNotFound, response.Error(response.MsgNotFound))
			return
		}

		registration, err := store.GetRegistrationByID(r.Context(), intID)
		if errors.Is(err, storage.ErrNotFound) {
			_ = response.WriteJSON(w, http.StatusNotFound, response.Error(response.MsgNotFound))
			return
		}
		if err != nil {
			log.Error("error getting registration", slog.String("error", err.Error()))
			_ = response.WriteJSON(w, http.StatusInternalServerError, response.Error(msgQueryFailed))
			return
		}

		_ = response.WriteJSON(w, http.StatusOK, response.OK(registration))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/registrations/{id}
// Permanently removes a registration. Unknown ids give 404.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage, rec Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		log := requestLogger(r).With(slog.String("id", id))
		log.Info("deleting a registration")

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			_ = response.WriteJSON(w, http.StatusNotFound, response.Error(response.MsgNotFound))
			return
		}

		err = store.DeleteRegistrationByID(r.Context(), intID)
		if errors.Is(err, storage.ErrNotFound) {
			_ = response.WriteJSON(w, http.StatusNotFound, response.Error(response.MsgNotFound))
			return
		}
		if err != nil {
			log.Error("error deleting registration", slog.String("error", err.Error()))
			_ = response.WriteJSON(w, http.StatusInternalServerError, response.Error(msgDeleteFailed))
			return
		}

		rec.RegistrationDeleted()
		log.Info("registration deleted")
		_ = response.WriteJSON(w, http.StatusOK, response.Message(msgDeleted))
	}
}

// Statistics is the payload of GET /api/statistics.
type Statistics struct {
	TotalRegistrations int64 `json:"totalRegistrations"`
}

// GetStatistics handles GET /api/statistics
//
//	{ "success": true, "data": { "totalRegistrations": 12 } }
func GetStatistics(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(r)

		total, err := store.CountRegistrations(r.Context())
		if err != nil {
			log.Error("error counting registrations", slog.String("error", err.Error()))
			_ = response.WriteJSON(w, http.StatusInternalServerError, response.Error(msgStatsFailed))
			return
		}

		_ = response.WriteJSON(w, http.StatusOK, response.OK(Statistics{TotalRegistrations: total}))
	}
}

func requestLogger(r *http.Request) *slog.Logger {
	return slog.Default().With(slog.String("request_id", middleware.GetRequestID(r.Context())))
}

// decodeRequest reads a JSON or form body. An empty body is not an error:
// it decodes to a zero request which validation then rejects as missing
// fields.
func decodeRequest(w http.ResponseWriter, r *http.Request) (types.RegistrationRequest, error) {
	var req types.RegistrationRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return decodeForm(w, r, mediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		return req, nil
	}
	return req, err
}

func decodeForm(w http.ResponseWriter, r *http.Request, mediaType string) (types.RegistrationRequest, error) {
	var req types.RegistrationRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return req, err
	}

	req.Name = r.PostFormValue("name")
	req.Phone = r.PostFormValue("phone")
	req.Email = r.PostFormValue("email")
	req.DanceStyle = optional(r, "dance_style")
	req.Experience = optional(r, "experience")
	req.Message = optional(r, "message")

	if err := req.Age.Parse(r.PostFormValue("age")); err != nil {
		return req, err
	}

	return req, nil
}

// optional returns nil when the field was not submitted at all.
func optional(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
