package verifyoffer

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/quickbite/oms/internal/service/models/offer"
	"github.com/quickbite/oms/internal/transport/http/resp"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/quickbite/oms/pkg/auth"
)

type service interface {
	VerifyOffer(ctx context.Context, customerID, offerID int64) (*offer.Offer, error)
}

type verifyOfferResponse struct {
	Message string       `json:"message"`
	Offer   *offer.Offer `json:"offer"`
}

// VerifyOffer checks that an offer is redeemable by the customer.
func VerifyOffer(w http.ResponseWriter, r *http.Request, service service) {
	claims, err := auth.ClaimsFromContext(r.Context())
	if err != nil {
		resp.Error(w, err)

		return
	}

	offerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		resp.Error(w, apperr.Validation("offer id must be an integer"))

		return
	}

	o, err := service.VerifyOffer(r.Context(), claims.UserID, offerID)
	if err != nil {
		resp.Error(w, err)

		return
	}

	resp.JSON(w, http.StatusOK, verifyOfferResponse{
		Message: "Offer is valid",
		Offer:   o,
	})
}
