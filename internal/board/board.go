package board

import (
	"sync"

	"github.com/ziadkadry99/newsboard/internal/news"
)

const (
	loadingText = "Carregando…"
	emptyText   = "Nenhum card encontrado."
	errorPrefix = "Falha ao carregar: "
)

// Board holds the card container and the status node the controller
// renders into. It is safe for concurrent use.
type Board struct {
	mu      sync.RWMutex
	cards   []Card
	status  news.Status
	message string
}

// New returns an idle, empty board.
func New() *Board {
	return &Board{status: news.StatusIdle}
}

// View is a point-in-time copy of the board.
type View struct {
	Status  news.Status `json:"status"`
	Message string      `json:"message"`
	Class   string      `json:"class"`
	Cards   []Card      `json:"cards"`
}

// Clear removes every card.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cards = nil
}

// Append adds a card after the existing ones.
func (b *Board) Append(c Card) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cards = append(b.cards, c)
}

// SetStatus replaces the status and its message.
func (b *Board) SetStatus(s news.Status, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = s
	b.message = message
}

// Snapshot returns a copy of the current board state.
func (b *Board) Snapshot() View {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cards := make([]Card, len(b.cards))
	copy(cards, b.cards)
	return View{
		Status:  b.status,
		Message: b.message,
		Class:   StatusClass(b.status),
		Cards:   cards,
	}
}

// StatusClass returns the CSS class list of the status node for s.
func StatusClass(s news.Status) string {
	switch s {
	case news.StatusLoading:
		return "empty loading"
	case news.StatusError:
		return "error"
	default:
		return "empty"
	}
}
