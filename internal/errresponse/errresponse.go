package errresponse

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/news/internal/apierror"
)

// pgInvalidTextRepresentation is raised when a value cannot be cast to the
// column type, e.g. a non-numeric string compared against an integer id.
const pgInvalidTextRepresentation = "22P02"

// pgNumericValueOutOfRange is raised when a vote total leaves the INT range.
const pgNumericValueOutOfRange = "22003"

const (
	MsgInternal      = "Internal Server Error"
	MsgNotValidRoute = "Not a valid route"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	Message string `json:"message"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// Classifier turns an error into a response, or passes (ok == false) so the
// next classifier in the chain gets a try.
type Classifier func(err error) (resp *ErrResponse, ok bool)

// Chain is tried in order for every failure. The last entry always matches.
var Chain = []Classifier{
	ClassifyDatabase,
	ClassifyStructured,
	Fallback,
}

func ClassifyDatabase(err error) (*ErrResponse, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}

	if pgErr.Code == pgInvalidTextRepresentation || pgErr.Code == pgNumericValueOutOfRange {
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusBadRequest,
			Message:        apierror.MsgBadRequest,
		}, true
	}

	return nil, false
}

func ClassifyStructured(err error) (*ErrResponse, bool) {
	apiErr, ok := apierror.As(err)
	if !ok {
		return nil, false
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: apiErr.Status,
		Message:        apiErr.Message,
	}, true
}

func Fallback(err error) (*ErrResponse, bool) {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        MsgInternal,
	}, true
}

// Classify runs err through Chain.
func Classify(err error) *ErrResponse {
	for _, classify := range Chain {
		if resp, ok := classify(err); ok {
			return resp
		}
	}

	resp, _ := Fallback(err)

	return resp
}

// Render classifies err and writes it. Unclassified failures are logged
// because their cause never reaches the client.
func Render(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, err error) {
	resp := Classify(err)
	if resp.HTTPStatusCode >= http.StatusInternalServerError && logger != nil {
		logger.Errorw("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	if rerr := render.Render(w, r, resp); rerr != nil && logger != nil {
		logger.Errorw(rerr.Error())
	}
}

// BadPayload turns a body that could not be bound into a 400. Failures that
// already carry a status pass through unchanged.
func BadPayload(err error) error {
	if _, ok := apierror.As(err); ok {
		return err
	}

	return fmt.Errorf("%w: %v", apierror.BadRequest(), err)
}

// NotValidRoute answers every request that no route matched.
func NotValidRoute(w http.ResponseWriter, r *http.Request) {
	Render(w, r, nil, apierror.New(http.StatusNotFound, MsgNotValidRoute))
}
