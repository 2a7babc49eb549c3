package qr

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/twbeatles/klotto-generator/internal/model"
)

// Ticket URL parsing errors.
var (
	// ErrInvalidTicketURL is returned when the URL does not carry a
	// well-formed v parameter.
	ErrInvalidTicketURL = errors.New("not a lotto ticket URL")

	// ErrNoGames is returned when the v parameter decodes to zero games.
	ErrNoGames = errors.New("no games found in ticket URL")
)

// digitsPerGame is the number of digits encoding one game: six numbers,
// two digits each.
const digitsPerGame = 12

// ParseTicketURL decodes the URL behind a paper ticket's QR code into
// the round number and the purchased games. Games with fewer than twelve
// digits are dropped; a URL yielding no games at all is an error.
func ParseTicketURL(rawURL string) (*model.Ticket, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTicketURL, err)
	}

	v := parsed.Query().Get("v")
	if v == "" {
		return nil, fmt.Errorf("%w: missing v parameter", ErrInvalidTicketURL)
	}

	parts := strings.Split(v, "m")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: missing game separator", ErrInvalidTicketURL)
	}

	drawNo, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad round number %q", ErrInvalidTicketURL, parts[0])
	}

	games := make([][]int, 0, 5)
	for _, encoded := range strings.Split(parts[1], "n") {
		game := parseGame(encoded)
		if game == nil {
			continue
		}
		games = append(games, game)
	}

	if len(games) == 0 {
		return nil, ErrNoGames
	}

	return &model.Ticket{DrawNo: drawNo, Games: games}, nil
}

// parseGame decodes one game from its digit string. Non-digit characters
// are ignored. Returns nil when fewer than twelve digits remain.
func parseGame(encoded string) []int {
	digits := make([]rune, 0, len(encoded))
	for _, r := range encoded {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < digitsPerGame {
		return nil
	}

	numbers := make([]int, 0, model.NumbersPerSet)
	for i := 0; i < digitsPerGame; i += 2 {
		numbers = append(numbers, int(digits[i]-'0')*10+int(digits[i+1]-'0'))
	}
	sort.Ints(numbers)
	return numbers
}
