package feed

import (
	"strings"

	"autistnet/internal/domain"
)

// Action is a single state transition. The set is closed: only the types in
// this package implement it.
type Action interface {
	apply(s *State, env Env) error
	name() string
}

// Reduce applies a to s and returns the resulting state. On error the
// returned state is s, unchanged.
func Reduce(s State, a Action, env Env) (State, error) {
	next := s.clone()
	if err := a.apply(&next, env); err != nil {
		return s, err
	}
	return next, nil
}

// Name returns the operation name of a, as used in logs and metrics.
func Name(a Action) string { return a.name() }

// CreatePost publishes a regular or complaint post.
type CreatePost struct {
	Author      domain.UserID
	Body        string
	ImageRef    string
	IsComplaint bool
	Details     *domain.ComplaintDetails
}

// DeletePost removes a post. Only its author may do so; anyone else is
// silently ignored.
type DeletePost struct {
	Requester domain.UserID
	Post      domain.PostID
}

// AttachOfficialResponse answers a complaint on behalf of a government
// account, replacing any earlier answer.
type AttachOfficialResponse struct {
	Requester domain.UserID
	Post      domain.PostID
	Text      string
}

// ToggleFollow flips whether Actor follows Target.
type ToggleFollow struct {
	Actor  domain.UserID
	Target domain.UserID
}

// TransferCoins moves coins from Sender to Recipient.
type TransferCoins struct {
	Sender    domain.UserID
	Recipient domain.UserID
	Amount    int64
}

// EnterGovernmentMode swaps the government identity in.
type EnterGovernmentMode struct {
	RegistrationID string
}

// ExitGovernmentMode restores the suspended member identity.
type ExitGovernmentMode struct{}

// SendMessage appends a message to a conversation.
type SendMessage struct {
	Conversation domain.ConversationID
	Sender       domain.UserID
	Text         string
}

// OpenConversation finds or starts the conversation with Peer.
type OpenConversation struct {
	Peer  domain.UserID
	Title string
}

// CreateAd appends a sponsored ad.
type CreateAd struct {
	Title    string
	Body     string
	ImageRef string
	Link     string
}

// DeleteAd removes an ad if present.
type DeleteAd struct {
	Ad domain.AdID
}

// UpdateProfile edits profile fields of Account.
type UpdateProfile struct {
	Account domain.UserID
	Patch   domain.ProfilePatch
}

// SetAvatar replaces the avatar image reference of Account.
type SetAvatar struct {
	Account  domain.UserID
	ImageRef string
}

// RewardKind names a fixed coin reward.
type RewardKind string

const (
	RewardVideo RewardKind = "video"
)

// ClaimReward credits a fixed reward to Actor.
type ClaimReward struct {
	Actor  domain.UserID
	Reward RewardKind
}

// SubmitStory sends an inspiring story for review and rewards the author.
type SubmitStory struct {
	Actor domain.UserID
	Text  string
}

// RegisterAccount adds an account to the directory.
type RegisterAccount struct {
	Account domain.Account
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (s *State) mustAccount(id domain.UserID) (domain.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, domain.NotFound("account", id.String())
	}
	return a, nil
}
