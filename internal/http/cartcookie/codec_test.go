package cartcookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec() *Codec {
	return New([]byte("test-secret"), "liq_cart", false)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := newCodec()
	v := c.Encode("cart-abc")
	id, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "cart-abc", id)
}

func TestDecodeRejectsTampering(t *testing.T) {
	c := newCodec()
	v := c.Encode("cart-abc")

	for name, bad := range map[string]string{
		"swapped id":   "cart-xyz." + v[len("cart-abc."):],
		"no signature": "cart-abc",
		"empty id":     v[len("cart-abc"):],
		"garbage":      "not a cookie",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(bad)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	v := New([]byte("other-secret"), "liq_cart", false).Encode("cart-abc")
	_, err := newCodec().Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestEnsureMintsOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newCodec()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	id := c.Ensure(ctx)
	require.NotEmpty(t, id)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "liq_cart", cookies[0].Name)

	// A follow-up request carrying the cookie sticks with the same cart.
	w2 := httptest.NewRecorder()
	ctx2, _ := gin.CreateTestContext(w2)
	ctx2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx2.Request.AddCookie(cookies[0])

	assert.Equal(t, id, c.Ensure(ctx2))
	assert.Empty(t, w2.Result().Cookies(), "no re-set when the cookie is valid")
}
