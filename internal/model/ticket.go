package model

// Ticket is a purchased Lotto 6/45 ticket decoded from the QR code URL
// printed on the paper slip. One ticket covers a single round and holds
// up to five games.
type Ticket struct {
	// DrawNo is the round the ticket was purchased for.
	DrawNo int `json:"draw_no"`

	// Games holds the number sets on the ticket, each sorted ascending.
	Games [][]int `json:"games"`
}

// TicketCheck is the result of checking a ticket against the official
// draw of its round.
type TicketCheck struct {
	// Ticket is the decoded ticket.
	Ticket *Ticket `json:"ticket"`

	// Draw is the official draw of the ticket's round. Nil when the
	// round is not in the local store yet.
	Draw *Draw `json:"draw,omitempty"`

	// Results holds one match result per game, in ticket order.
	// Empty when Draw is nil.
	Results []MatchResult `json:"results,omitempty"`
}

// BestRank returns the highest prize rank among the games, or RankNone.
func (tc *TicketCheck) BestRank() Rank {
	best := RankNone
	for _, res := range tc.Results {
		if res.Rank == RankNone {
			continue
		}
		// Lower non-zero rank values are better prizes (RankFirst == 1).
		if best == RankNone || res.Rank < best {
			best = res.Rank
		}
	}
	return best
}
