package websocket

import (
	"board-lab/domain"
	"board-lab/errors"
	"crypto/subtle"
	"net/http"
	"strings"
	"unicode"
)

const AdminKeyHeader = "ADMIN_API_KEY"

// Authorizer turns a handshake request into a Connection or a NotAuthorizedError.
type Authorizer interface {
	Authorize(r *http.Request, channel domain.Channel) (*domain.Connection, error)
}

type AdminAuthorizer struct {
	apiKey string
}

func NewAdminAuthorizer(apiKey string) AdminAuthorizer {
	return AdminAuthorizer{apiKey: apiKey}
}

func (a AdminAuthorizer) Authorize(r *http.Request, channel domain.Channel) (*domain.Connection, error) {
	given := r.Header.Get(AdminKeyHeader)
	if a.apiKey == "" || subtle.ConstantTimeCompare([]byte(given), []byte(a.apiKey)) != 1 {
		return nil, errors.NewNotAuthorized("Forbidden")
	}
	return domain.NewAdminConnection(channel), nil
}

// PlayerAuthorizer reads room and player from the query string.
type PlayerAuthorizer struct{}

func (PlayerAuthorizer) Authorize(r *http.Request, channel domain.Channel) (*domain.Connection, error) {
	query := r.URL.Query()
	room, player := query.Get("room"), query.Get("player")
	switch {
	case room == "":
		return nil, errors.NewNotAuthorized("No <room> provided")
	case player == "":
		return nil, errors.NewNotAuthorized("No <player> provided")
	case hasSpace(room):
		return nil, errors.NewNotAuthorized("Invalid <room> characters")
	case hasSpace(player) || domain.IsReservedEvent(player):
		return nil, errors.NewNotAuthorized("Invalid <player> characters")
	}
	return domain.NewPlayerConnection(channel, room, player)
}

func hasSpace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}
