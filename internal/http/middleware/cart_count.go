package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/WhiteNexus47/LiquiDator/internal/http/cartcookie"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
)

const cartCountKey = "cart_count"

// CartCount resolves the request's cart and stashes its line count so
// any handler can decorate its response with the header badge. Failures
// degrade to zero; the badge is not worth failing a page over.
func CartCount(codec *cartcookie.Codec, store *cart.Store, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n := 0
		if cartID, ok := codec.GetCartID(c); ok {
			count, err := store.LineCount(c.Request.Context(), cartID)
			if err != nil {
				l.WarnContext(c.Request.Context(), "cart_count_failed",
					"request_id", GetRequestID(c),
					"error", err,
				)
			} else {
				n = count
			}
		}

		c.Set(cartCountKey, n)
		c.Next()
	}
}

func GetCartCount(c *gin.Context) int {
	v, ok := c.Get(cartCountKey)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}
