package graphql

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/datavista/hris-backend-go/internal/handler/http/response"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

const maxRequestBytes = 1 << 20

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler serves GraphQL over JSON. The caller identity must already be on
// the request context.
type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeRequestError(w, "request body must be a JSON object")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeRequestError(w, "query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
	result.Errors = annotateErrors(result.Errors)

	response.JSON(w, http.StatusOK, result)
}

func writeRequestError(w http.ResponseWriter, message string) {
	response.JSON(w, http.StatusBadRequest, &graphql.Result{
		Errors: []gqlerrors.FormattedError{{
			Message:    message,
			Extensions: map[string]interface{}{"code": CodeBadRequest},
		}},
	})
}
