package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/jwtx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// JWKSHandler exposes the public keys that verify session tokens.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify session tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	xcssdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, xcssdk.JWKSResponse(keys.PublicJWKS()))
	}
}
