package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"autistnet/internal/domain"
	"autistnet/internal/metrics"
)

// Store is the session's FeedStateStore. It is safe for concurrent use;
// actions are applied one at a time and their hooks run in commit order.
type Store struct {
	mu    sync.Mutex
	state State
	env   Env

	// lastHook is closed when the hooks of the latest commit have finished.
	// Each commit waits on its predecessor, so hooks run in commit order.
	lastHook chan struct{}

	snapshots domain.SnapshotStore
	events    domain.EventPublisher
	ledger    domain.LedgerMirror
	follows   domain.FollowMirror
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithEnv overrides the clock, id generator and policy.
func WithEnv(env Env) Option { return func(s *Store) { s.env = env } }

// WithSnapshotStore persists every committed state.
func WithSnapshotStore(st domain.SnapshotStore) Option {
	return func(s *Store) { s.snapshots = st }
}

// WithEventPublisher publishes an event per committed change.
func WithEventPublisher(p domain.EventPublisher) Option {
	return func(s *Store) { s.events = p }
}

// WithLedgerMirror copies ledger entries after each transfer.
func WithLedgerMirror(m domain.LedgerMirror) Option {
	return func(s *Store) { s.ledger = m }
}

// WithFollowMirror copies follow changes after each toggle.
func WithFollowMirror(m domain.FollowMirror) Option {
	return func(s *Store) { s.follows = m }
}

// WithMetrics counts operations.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Store) { s.metrics = m } }

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.logger = l } }

// NewStore returns a Store starting from initial.
func NewStore(initial State, opts ...Option) *Store {
	s := &Store{state: initial, env: DefaultEnv()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// State returns the current state. The value is immutable and safe to keep.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and returns the committed state. The snapshot is saved
// before the new state becomes visible, so a failed save changes nothing.
func (s *Store) Dispatch(a Action) (State, error) {
	_, next, err := s.commit(a, nil)
	return next, err
}

// hook runs after a successful commit, serialised with the hooks of every
// other commit in commit order.
type hook func(prev, next State)

// commit applies a, runs after on success and returns the states before and
// after it.
func (s *Store) commit(a Action, after hook) (prev, next State, err error) {
	op := a.name()
	s.mu.Lock()
	prev = s.state
	next, err = Reduce(prev, a, s.env)
	if err == nil && s.snapshots != nil {
		if saveErr := s.snapshots.SaveSnapshot(next.Snapshot(s.env.now())); saveErr != nil {
			err = fmt.Errorf("save snapshot: %w", saveErr)
		}
	}
	if err != nil {
		next = s.state
		s.mu.Unlock()
		s.metrics.ObserveOperation(op, err)
		s.logger.Debug("Action rejected", slog.String("op", op), slog.String("kind", domain.KindOf(err)),
			slog.String("error", err.Error()))
		return prev, next, err
	}
	s.state = next
	wait, done := s.lastHook, make(chan struct{})
	s.lastHook = done
	s.mu.Unlock()

	defer close(done)

	s.metrics.ObserveOperation(op, nil)
	s.logger.Debug("Action committed", slog.String("op", op))
	if wait != nil {
		<-wait
	}
	if after != nil {
		after(prev, next)
	}
	return prev, next, nil
}

// CreatePost publishes a post and returns it.
func (s *Store) CreatePost(ctx context.Context, a CreatePost) (domain.Post, error) {
	_, next, err := s.commit(a, func(_, next State) {
		post := next.posts[0]
		s.publish(ctx, domain.Event{
			Kind:    domain.EventPostCreated,
			Actor:   post.AuthorID,
			Subject: post.ID.String(),
			At:      post.CreatedAt,
			Data:    map[string]any{"type": post.KindName()},
		})
	})
	if err != nil {
		return domain.Post{}, err
	}
	return next.posts[0], nil
}

// DeletePost removes requester's post and reports whether anything was removed.
func (s *Store) DeletePost(ctx context.Context, requester domain.UserID, id domain.PostID) (bool, error) {
	before, next, err := s.commit(DeletePost{Requester: requester, Post: id}, func(prev, next State) {
		if len(next.posts) < len(prev.posts) {
			s.publish(ctx, domain.Event{Kind: domain.EventPostDeleted, Actor: requester, Subject: id.String(), At: s.env.now()})
		}
	})
	if err != nil {
		return false, err
	}
	return len(next.posts) < len(before.posts), nil
}

// AttachOfficialResponse answers a complaint and returns the updated post.
func (s *Store) AttachOfficialResponse(
	ctx context.Context,
	requester domain.UserID,
	id domain.PostID,
	text string,
) (domain.Post, error) {
	_, next, err := s.commit(AttachOfficialResponse{Requester: requester, Post: id, Text: text}, func(_, _ State) {
		s.publish(ctx, domain.Event{Kind: domain.EventComplaintAnswer, Actor: requester, Subject: id.String(), At: s.env.now()})
	})
	if err != nil {
		return domain.Post{}, err
	}
	post, _ := next.Post(id)
	return post, nil
}

// ToggleFollow flips the follow edge and returns whether actor now follows target.
func (s *Store) ToggleFollow(ctx context.Context, actor, target domain.UserID) (bool, error) {
	_, next, err := s.commit(ToggleFollow{Actor: actor, Target: target}, func(_, next State) {
		following := next.IsFollowing(actor, target)
		if s.follows != nil {
			edge := domain.FollowEdge{Follower: actor, Followee: target}
			if err := s.follows.SetFollow(ctx, edge, following); err != nil {
				s.logger.Warn("Follow mirror failed", slog.String("follower", actor.String()),
					slog.String("followee", target.String()), slog.String("error", err.Error()))
			}
		}
		s.publish(ctx, domain.Event{
			Kind:    domain.EventFollowToggled,
			Actor:   actor,
			Subject: target.String(),
			At:      s.env.now(),
			Data:    map[string]any{"following": following},
		})
	})
	if err != nil {
		return false, err
	}
	return next.IsFollowing(actor, target), nil
}

// TransferCoins moves coins and returns the sender's debit entry.
func (s *Store) TransferCoins(
	ctx context.Context,
	sender, recipient domain.UserID,
	amount int64,
) (domain.Transaction, error) {
	_, next, err := s.commit(TransferCoins{Sender: sender, Recipient: recipient, Amount: amount}, func(_, next State) {
		debit, credit := lastEntry(next, sender), lastEntry(next, recipient)
		if s.ledger != nil {
			from, _ := next.Account(sender)
			to, _ := next.Account(recipient)
			s.mirrorLedger(ctx, sender, from.Coins, debit)
			s.mirrorLedger(ctx, recipient, to.Coins, credit)
		}
		s.publish(ctx, domain.Event{
			Kind:    domain.EventCoinsTransferred,
			Actor:   sender,
			Subject: recipient.String(),
			At:      debit.At,
			Data:    map[string]any{"amount": amount},
		})
	})
	if err != nil {
		return domain.Transaction{}, err
	}
	return lastEntry(next, sender), nil
}

func lastEntry(s State, account domain.UserID) domain.Transaction {
	txs := s.ledgers[account]
	return txs[len(txs)-1]
}

func (s *Store) mirrorLedger(ctx context.Context, account domain.UserID, balance int64, tx domain.Transaction) {
	if err := s.ledger.RecordTransaction(ctx, account, balance, tx); err != nil {
		s.logger.Warn("Ledger mirror failed", slog.String("account", account.String()),
			slog.String("tx", tx.ID.String()), slog.String("error", err.Error()))
	}
}

// ClaimReward credits a fixed reward to actor and returns the new balance.
func (s *Store) ClaimReward(ctx context.Context, actor domain.UserID, kind RewardKind) (int64, error) {
	return s.reward(ctx, ClaimReward{Actor: actor, Reward: kind}, actor, string(kind))
}

// SubmitStory rewards actor for a story and returns the new balance.
func (s *Store) SubmitStory(ctx context.Context, actor domain.UserID, text string) (int64, error) {
	return s.reward(ctx, SubmitStory{Actor: actor, Text: text}, actor, "story")
}

func (s *Store) reward(ctx context.Context, a Action, actor domain.UserID, reason string) (int64, error) {
	_, next, err := s.commit(a, func(_, _ State) {
		s.publish(ctx, domain.Event{Kind: domain.EventRewardGranted, Actor: actor, Subject: reason, At: s.env.now()})
	})
	if err != nil {
		return 0, err
	}
	acct, _ := next.Account(actor)
	return acct.Coins, nil
}

// EnterGovernmentMode swaps in the government identity and returns it.
func (s *Store) EnterGovernmentMode(ctx context.Context, registrationID string) (domain.Account, error) {
	_, next, err := s.commit(EnterGovernmentMode{RegistrationID: registrationID}, func(_, next State) {
		s.publish(ctx, domain.Event{Kind: domain.EventGovernmentMode, Actor: next.activeID, Subject: "enter", At: s.env.now()})
	})
	if err != nil {
		return domain.Account{}, err
	}
	return next.Active(), nil
}

// ExitGovernmentMode restores the member identity and returns it.
func (s *Store) ExitGovernmentMode(ctx context.Context) (domain.Account, error) {
	_, next, err := s.commit(ExitGovernmentMode{}, func(prev, _ State) {
		if prev.InGovernmentMode() {
			s.publish(ctx, domain.Event{Kind: domain.EventGovernmentMode, Actor: prev.activeID, Subject: "exit", At: s.env.now()})
		}
	})
	if err != nil {
		return domain.Account{}, err
	}
	return next.Active(), nil
}

// SendMessage appends a message and returns it.
func (s *Store) SendMessage(
	ctx context.Context,
	conversation domain.ConversationID,
	sender domain.UserID,
	text string,
) (domain.Message, error) {
	last := func(st State) domain.Message {
		conv, _ := st.Conversation(conversation)
		msg, _ := conv.Last()
		return msg
	}
	_, next, err := s.commit(SendMessage{Conversation: conversation, Sender: sender, Text: text}, func(_, next State) {
		s.publish(ctx, domain.Event{Kind: domain.EventMessageSent, Actor: sender, Subject: conversation.String(), At: last(next).At})
	})
	if err != nil {
		return domain.Message{}, err
	}
	return last(next), nil
}

// OpenConversation returns the conversation with peer, creating it if needed.
func (s *Store) OpenConversation(_ context.Context, peer domain.UserID, title string) (domain.Conversation, error) {
	next, err := s.Dispatch(OpenConversation{Peer: peer, Title: title})
	if err != nil {
		return domain.Conversation{}, err
	}
	conv, _ := next.ConversationWith(peer)
	return conv, nil
}

// CreateAd appends an ad and returns it.
func (s *Store) CreateAd(ctx context.Context, a CreateAd) (domain.Ad, error) {
	_, next, err := s.commit(a, func(_, next State) {
		ad := next.ads[len(next.ads)-1]
		s.publish(ctx, domain.Event{Kind: domain.EventAdChanged, Actor: next.activeID, Subject: ad.ID.String(), At: s.env.now(),
			Data: map[string]any{"op": "create"}})
	})
	if err != nil {
		return domain.Ad{}, err
	}
	return next.ads[len(next.ads)-1], nil
}

// DeleteAd removes an ad and reports whether it existed.
func (s *Store) DeleteAd(ctx context.Context, id domain.AdID) (bool, error) {
	before, next, err := s.commit(DeleteAd{Ad: id}, func(prev, next State) {
		if len(next.ads) < len(prev.ads) {
			s.publish(ctx, domain.Event{Kind: domain.EventAdChanged, Actor: next.activeID, Subject: id.String(), At: s.env.now(),
				Data: map[string]any{"op": "delete"}})
		}
	})
	if err != nil {
		return false, err
	}
	return len(next.ads) < len(before.ads), nil
}

// UpdateProfile edits an account's profile and returns the result.
func (s *Store) UpdateProfile(ctx context.Context, id domain.UserID, patch domain.ProfilePatch) (domain.Account, error) {
	return s.profile(ctx, UpdateProfile{Account: id, Patch: patch}, id)
}

// SetAvatar replaces an account's avatar and returns the result.
func (s *Store) SetAvatar(ctx context.Context, id domain.UserID, imageRef string) (domain.Account, error) {
	return s.profile(ctx, SetAvatar{Account: id, ImageRef: imageRef}, id)
}

func (s *Store) profile(ctx context.Context, a Action, id domain.UserID) (domain.Account, error) {
	_, next, err := s.commit(a, func(_, _ State) {
		s.publish(ctx, domain.Event{Kind: domain.EventProfileUpdated, Actor: id, Subject: a.name(), At: s.env.now()})
	})
	if err != nil {
		return domain.Account{}, err
	}
	acct, _ := next.Account(id)
	return acct, nil
}

// RegisterAccount adds an account to the directory.
func (s *Store) RegisterAccount(_ context.Context, acct domain.Account) error {
	_, err := s.Dispatch(RegisterAccount{Account: acct})
	return err
}

func (s *Store) publish(ctx context.Context, ev domain.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn("Event publish failed", slog.String("kind", string(ev.Kind)), slog.String("error", err.Error()))
	}
}
