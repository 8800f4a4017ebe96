package flightsearch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/linkopen"
)

const dateLayout = "2006-01-02"

var (
	// ErrMissingSelection means origin or destination is absent or unknown.
	ErrMissingSelection = errors.New("please select both departure and destination airports")
	// ErrInvalidDate means a travel date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("please enter travel dates as YYYY-MM-DD")
)

// Query is the quick-search form state.
type Query struct {
	Origin      string
	Destination string
	Departure   string
	Return      string
	Passengers  int
}

// Builder turns a Query into a prefilled messaging link.
type Builder struct {
	dir     *Directory
	baseURL string
}

// NewBuilder creates a Builder that links to baseURL, e.g. https://wa.me/<recipient>.
func NewBuilder(dir *Directory, baseURL string) *Builder {
	return &Builder{dir: dir, baseURL: baseURL}
}

// Directory returns the airport list the builder resolves against.
func (b *Builder) Directory() *Directory {
	return b.dir
}

// Message renders the text sent to the agency. Nothing is built unless both
// airports resolve.
func (b *Builder) Message(q Query) (string, error) {
	from, ok := b.dir.Lookup(q.Origin)
	if !ok || strings.TrimSpace(q.Origin) == "" {
		return "", ErrMissingSelection
	}
	to, ok := b.dir.Lookup(q.Destination)
	if !ok || strings.TrimSpace(q.Destination) == "" {
		return "", ErrMissingSelection
	}

	departure, err := dateOr(q.Departure, "Not specified")
	if err != nil {
		return "", err
	}
	ret, err := dateOr(q.Return, "One way")
	if err != nil {
		return "", err
	}
	passengers := q.Passengers
	if passengers < 1 {
		passengers = 1
	}

	var sb strings.Builder
	sb.WriteString("Hello! I would like to search for flights:\n\n")
	fmt.Fprintf(&sb, "From: %s (%s)\n", from.City, from.Code)
	fmt.Fprintf(&sb, "To: %s (%s)\n", to.City, to.Code)
	fmt.Fprintf(&sb, "Departure: %s\n", departure)
	fmt.Fprintf(&sb, "Return: %s\n", ret)
	fmt.Fprintf(&sb, "Passengers: %d", passengers)
	return sb.String(), nil
}

// Link renders the message into the messaging URL template.
func (b *Builder) Link(q Query) (string, error) {
	_, link, err := b.Compose(q)
	return link, err
}

// Compose returns the message and the link carrying it.
func (b *Builder) Compose(q Query) (msg, link string, err error) {
	msg, err = b.Message(q)
	if err != nil {
		return "", "", err
	}
	return msg, b.baseURL + "?text=" + linkopen.Escape(msg), nil
}

// QRCode renders link as a PNG of size×size pixels.
func QRCode(link string, size int) ([]byte, error) {
	return qrcode.Encode(link, qrcode.Medium, size)
}

func dateOr(value, placeholder string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return placeholder, nil
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return "", ErrInvalidDate
	}
	return value, nil
}
