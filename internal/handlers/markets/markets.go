package markets

import (
	"net/http"

	"github.com/Potduo/earnpark/internal/rates"
	"github.com/Potduo/earnpark/pkg/utils"
)

type Quoter interface {
	Quotes() []rates.Quote
}

type MarketsHandler struct {
	quoter Quoter
}

func New(quoter Quoter) *MarketsHandler {
	return &MarketsHandler{
		quoter: quoter,
	}
}

// GetQuotes godoc
//
//	@Summary		Get market quotes
//	@Description	Latest spot prices for the supported currencies.
//	@Tags			Markets
//	@Produce		json
//	@Success		200	{array}	rates.Quote
//	@Router			/api/markets [get]
func (h *MarketsHandler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.quoter.Quotes())
}
