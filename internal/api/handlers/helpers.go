package handlers

import (
	"errors"
	"fmt"
	"gps-route-service/internal/api/dto"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/obs"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation messages.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Ctx(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

func writeInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	obs.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

// routeIDParam parses {route_id}. Ids that do not fit an int64 cannot exist.
func routeIDParam(r *http.Request) (domain.RouteID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "route_id"), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return domain.RouteID(id), true
}

// decodeAndValidate reads one JSON object from the body into dst and checks
// its validate tags. The error text is suitable for a 400 response.
func decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid json body")
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.New("invalid request body")
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				msgs = append(msgs, fe.Field()+" is required")
			case "gte":
				msgs = append(msgs, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
			case "lte":
				msgs = append(msgs, fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param()))
			default:
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
		}
		return errors.New(strings.Join(msgs, "; "))
	}

	return nil
}
