package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-board/internal/board"
)

var (
	ErrInvalidIndex = errors.New("invalid cell index")
	ErrClosed       = errors.New("session is closed")
)

const subscriberBuffer = 32

type Update struct {
	Index    int         `json:"index"`
	Revealed bool        `json:"revealed"`
	Glyph    board.Glyph `json:"glyph"`
}

type Snapshot struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Grid   board.View `json:"grid"`
}

// Event is broadcast to subscribers. Exactly one field is set.
type Event struct {
	Update *Update   `json:"update,omitempty"`
	Reset  *Snapshot `json:"reset,omitempty"`
}

type requestKind int

const (
	revealRequest requestKind = iota
	snapshotRequest
	regenerateRequest
	subscribeRequest
	unsubscribeRequest
)

type request struct {
	kind  requestKind
	index int
	reply chan response
}

type response struct {
	update   Update
	snapshot Snapshot
	events   chan Event
	id       int
	err      error
}

// Session is the only owner of a board. Every read and write goes through
// Run as a message, so the board itself needs no locking.
type Session struct {
	log         *logrus.Logger
	board       *board.Board
	requests    chan request
	done        chan struct{}
	subscribers map[int]chan Event
	nextID      int
}

// New generates b if it has not been generated yet.
func New(b *board.Board, log *logrus.Logger) *Session {
	if !b.Generated() {
		b.Generate()
	}
	return &Session{
		log:         log,
		board:       b,
		requests:    make(chan request),
		done:        make(chan struct{}),
		subscribers: make(map[int]chan Event),
	}
}

// Run applies requests until ctx is done. It must be called exactly once.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		close(s.done)
		for id, ch := range s.subscribers {
			close(ch)
			delete(s.subscribers, id)
		}
	}()

	s.log.WithFields(logrus.Fields{
		"width":  s.board.Width(),
		"height": s.board.Height(),
	}).Debug("session started")

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("session stopped")
			return ctx.Err()
		case req := <-s.requests:
			req.reply <- s.apply(req)
		}
	}
}

func (s *Session) apply(req request) (res response) {
	switch req.kind {
	case revealRequest:
		if req.index < 0 || req.index >= s.board.Len() {
			res.err = fmt.Errorf("%w: %d", ErrInvalidIndex, req.index)
			return
		}
		state := s.board.Reveal(req.index)
		res.update = Update{
			Index:    req.index,
			Revealed: state.Revealed,
			Glyph:    board.Classify(state, false),
		}
		s.log.WithFields(logrus.Fields{
			"index": req.index,
			"cell":  state.Cell.String(),
		}).Debug("revealed")
		s.broadcast(Event{Update: &res.update})
	case snapshotRequest:
		res.snapshot = s.snapshot()
	case regenerateRequest:
		s.board.Generate()
		res.snapshot = s.snapshot()
		s.log.Info("board regenerated")
		s.broadcast(Event{Reset: &res.snapshot})
	case subscribeRequest:
		s.nextID++
		res.id = s.nextID
		res.events = make(chan Event, subscriberBuffer)
		s.subscribers[res.id] = res.events
	case unsubscribeRequest:
		if ch, ok := s.subscribers[req.index]; ok {
			close(ch)
			delete(s.subscribers, req.index)
		}
	}
	return
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		Width:  s.board.Width(),
		Height: s.board.Height(),
		Grid:   s.board.View(false),
	}
}

func (s *Session) broadcast(e Event) {
	for id, ch := range s.subscribers {
		select {
		case ch <- e:
		default:
			s.log.WithField("subscriber", id).Warn("subscriber is lagging, event dropped")
		}
	}
}

func (s *Session) do(ctx context.Context, req request) (response, error) {
	req.reply = make(chan response, 1)
	select {
	case s.requests <- req:
	case <-s.done:
		return response{}, ErrClosed
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, res.err
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

func (s *Session) Reveal(ctx context.Context, index int) (Update, error) {
	res, err := s.do(ctx, request{kind: revealRequest, index: index})
	return res.update, err
}

func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	res, err := s.do(ctx, request{kind: snapshotRequest})
	return res.snapshot, err
}

// Regenerate replaces the board with a freshly generated one and
// broadcasts the reset.
func (s *Session) Regenerate(ctx context.Context) (Snapshot, error) {
	res, err := s.do(ctx, request{kind: regenerateRequest})
	return res.snapshot, err
}

// Subscribe returns a channel receiving every update applied after the
// call. The channel is closed by cancel or when Run returns. Events are
// dropped for subscribers that fall behind.
func (s *Session) Subscribe(ctx context.Context) (events <-chan Event, cancel func(), err error) {
	res, err := s.do(ctx, request{kind: subscribeRequest})
	if err != nil {
		return nil, nil, err
	}
	cancel = func() {
		s.do(context.Background(), request{kind: unsubscribeRequest, index: res.id})
	}
	return res.events, cancel, nil
}
