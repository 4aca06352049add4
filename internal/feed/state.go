package feed

import (
	"fmt"
	"maps"
	"slices"

	"autistnet/internal/domain"
)

// State is the complete feed state of one session. The zero value is not
// usable; build one with New or FromSnapshot.
type State struct {
	activeID     domain.UserID
	suspendedID  domain.UserID
	governmentID domain.UserID

	accounts map[domain.UserID]domain.Account
	order    []domain.UserID

	posts         []domain.Post
	ads           []domain.Ad
	follows       map[domain.FollowEdge]struct{}
	ledgers       map[domain.UserID][]domain.Transaction
	conversations []domain.Conversation
}

// New builds a State whose active identity is member. government is the
// identity swapped in by EnterGovernmentMode; others seed the directory.
func New(member, government domain.Account, others ...domain.Account) (State, error) {
	if government.Role != domain.RoleGovernment {
		return State{}, fmt.Errorf("government identity %q has role %s", government.ID, government.Role)
	}
	s := State{
		activeID:     member.ID,
		governmentID: government.ID,
		accounts:     make(map[domain.UserID]domain.Account),
		follows:      make(map[domain.FollowEdge]struct{}),
		ledgers:      make(map[domain.UserID][]domain.Transaction),
	}
	for _, a := range append([]domain.Account{member, government}, others...) {
		if err := s.addAccount(a); err != nil {
			return State{}, err
		}
	}
	return s, nil
}

func (s *State) addAccount(a domain.Account) error {
	if a.ID == "" {
		return domain.Validationf("account id is required")
	}
	if !a.Role.Valid() {
		return domain.Validationf("account %q has an invalid role", a.ID)
	}
	if _, dup := s.accounts[a.ID]; dup {
		return domain.Validationf("account %q already exists", a.ID)
	}
	s.accounts[a.ID] = a
	s.order = append(s.order, a.ID)
	return nil
}

// clone returns a copy that shares no mutable storage with s.
func (s State) clone() State {
	out := s
	out.accounts = maps.Clone(s.accounts)
	out.order = slices.Clone(s.order)
	out.posts = slices.Clone(s.posts)
	out.ads = slices.Clone(s.ads)
	out.follows = maps.Clone(s.follows)
	out.ledgers = make(map[domain.UserID][]domain.Transaction, len(s.ledgers))
	for id, txs := range s.ledgers {
		out.ledgers[id] = slices.Clone(txs)
	}
	out.conversations = make([]domain.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		c.Messages = slices.Clone(c.Messages)
		out.conversations[i] = c
	}
	return out
}

// Active returns the account currently acting.
func (s State) Active() domain.Account { return s.accounts[s.activeID] }

// InGovernmentMode reports whether the government identity is swapped in.
func (s State) InGovernmentMode() bool { return s.suspendedID != "" }

// Account looks up an account by id.
func (s State) Account(id domain.UserID) (domain.Account, bool) {
	a, ok := s.accounts[id]
	return a, ok
}

// Accounts lists the directory in insertion order.
func (s State) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.accounts[id])
	}
	return out
}

// Posts returns the feed, most recent first.
func (s State) Posts() []domain.Post { return slices.Clone(s.posts) }

// Post looks up a post by id.
func (s State) Post(id domain.PostID) (domain.Post, bool) {
	i := s.postIndex(id)
	if i < 0 {
		return domain.Post{}, false
	}
	return s.posts[i], true
}

func (s State) postIndex(id domain.PostID) int {
	return slices.IndexFunc(s.posts, func(p domain.Post) bool { return p.ID == id })
}

// Ads returns the ads in creation order.
func (s State) Ads() []domain.Ad { return slices.Clone(s.ads) }

// IsFollowing reports whether follower follows followee.
func (s State) IsFollowing(follower, followee domain.UserID) bool {
	_, ok := s.follows[domain.FollowEdge{Follower: follower, Followee: followee}]
	return ok
}

// Follows returns the follow set in a stable order.
func (s State) Follows() []domain.FollowEdge {
	out := slices.Collect(maps.Keys(s.follows))
	slices.SortFunc(out, compareEdges)
	return out
}

func compareEdges(a, b domain.FollowEdge) int {
	if a.Follower != b.Follower {
		if a.Follower < b.Follower {
			return -1
		}
		return 1
	}
	switch {
	case a.Followee < b.Followee:
		return -1
	case a.Followee > b.Followee:
		return 1
	}
	return 0
}

// Ledger returns the account's ledger in the order entries were appended.
func (s State) Ledger(id domain.UserID) []domain.Transaction {
	return slices.Clone(s.ledgers[id])
}

// Conversations lists conversations in creation order.
func (s State) Conversations() []domain.Conversation {
	out := make([]domain.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		c.Messages = slices.Clone(c.Messages)
		out[i] = c
	}
	return out
}

// Conversation looks up a conversation by id.
func (s State) Conversation(id domain.ConversationID) (domain.Conversation, bool) {
	i := s.conversationIndex(id)
	if i < 0 {
		return domain.Conversation{}, false
	}
	c := s.conversations[i]
	c.Messages = slices.Clone(c.Messages)
	return c, true
}

func (s State) conversationIndex(id domain.ConversationID) int {
	return slices.IndexFunc(s.conversations, func(c domain.Conversation) bool { return c.ID == id })
}

// Filter selects which posts Feed returns.
type Filter int

const (
	FilterAll Filter = iota
	FilterComplaints
)

// Feed returns posts matching f, most recent first.
func (s State) Feed(f Filter) []domain.Post {
	if f != FilterComplaints {
		return s.Posts()
	}
	var out []domain.Post
	for _, p := range s.posts {
		if p.IsComplaint() {
			out = append(out, p)
		}
	}
	return out
}

// PostsBy returns the posts written by author, most recent first.
func (s State) PostsBy(author domain.UserID) []domain.Post {
	var out []domain.Post
	for _, p := range s.posts {
		if p.AuthorID == author {
			out = append(out, p)
		}
	}
	return out
}

// ProfileStats counts the account's posts and the likes they collected.
func (s State) ProfileStats(id domain.UserID) domain.ProfileStats {
	var st domain.ProfileStats
	for _, p := range s.PostsBy(id) {
		st.Posts++
		st.TotalLikes += p.Likes
	}
	return st
}
