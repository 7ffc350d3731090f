package httperr

import (
	"net/http"

	"storefront-core/internal/pkg/errs"
	"storefront-core/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type kindMapping struct {
	kind   error
	status int
	msg    string
}

// first match wins. BackendUnavailable is listed before the operation kinds it is marked with.
var kindMappings = []kindMapping{
	{errs.ErrBackendUnavailable, http.StatusServiceUnavailable, "Backend unavailable"},
	{errs.ErrCatalogUnavailable, http.StatusServiceUnavailable, "Catalog unavailable"},
	{errs.ErrOrderConflict, http.StatusConflict, "An order is already being placed"},
	{errs.ErrStockExhausted, http.StatusConflict, "Out of stock"},
	{errs.ErrCartDisabled, http.StatusConflict, "Cart is disabled"},
	{errs.ErrLineEmpty, http.StatusUnprocessableEntity, "Record is not in the cart"},
	{errs.ErrCartEmpty, http.StatusUnprocessableEntity, "Cart is empty"},
	{errs.ErrOrderCommitFailed, http.StatusBadGateway, "Order could not be placed"},
	{errs.ErrMutationRejected, http.StatusBadGateway, "Cart update rejected"},
	{errs.ErrFetchFailed, http.StatusBadGateway, "Cart could not be loaded"},
	{errs.ErrMalformedResponse, http.StatusBadGateway, "Unexpected backend response"},
}

// StatusFor maps a marked failure to its HTTP status and public message.
func StatusFor(err error) (int, string) {
	for _, m := range kindMappings {
		if errs.Is(err, m.kind) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// AbortWithKind aborts with the status of err's kind. A backend message, when present, goes to detail.
func AbortWithKind(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	var detail any
	if reason := shared.RemoteMessage(err); reason != "" {
		detail = gin.H{"reason": reason}
	}
	AbortWithError(c, status, err, msg, detail)
}
