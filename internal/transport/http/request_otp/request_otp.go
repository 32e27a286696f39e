package requestotp

import (
	"context"
	"net/http"

	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	RequestOTP(ctx context.Context, customerID int64) error
}

type requestOTPResponse struct {
	Message string `json:"message"`
}

// RequestOTP issues a fresh OTP for the authenticated customer.
func RequestOTP(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	if err := service.RequestOTP(r.Context(), claims.UserID); err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, requestOTPResponse{
		Message: "OTP sent to your registered phone number",
	})
}
