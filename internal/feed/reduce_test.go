package feed_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autistnet/internal/domain"
	"autistnet/internal/feed"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

const (
	member = domain.UserID("u1")
	gov    = domain.UserID("gov1")
	friend = domain.UserID("u2")
)

func newState(t *testing.T) feed.State {
	t.Helper()
	s, err := feed.New(
		domain.Account{ID: member, Name: "Gabriel Silva", Role: domain.RoleMember, Coins: 1250, Followers: 450, Following: 120},
		domain.Account{
			ID:             gov,
			Name:           "Secretaria de Saude - SP",
			Role:           domain.RoleGovernment,
			Verified:       true,
			RegistrationID: "00.000.000/0001-00",
			Followers:      10000,
		},
		domain.Account{ID: friend, Name: "Carlos Santos", Role: domain.RoleMember, Followers: 10, Following: 4},
	)
	require.NoError(t, err)
	return s
}

func testEnv() feed.Env {
	n := 0
	return feed.Env{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return strconv.Itoa(n)
		},
		Policy: feed.DefaultPolicy(),
	}
}

func mustReduce(t *testing.T, s feed.State, a feed.Action, env feed.Env) feed.State {
	t.Helper()
	next, err := feed.Reduce(s, a, env)
	require.NoError(t, err, feed.Name(a))
	return next
}

func complaintDetails() *domain.ComplaintDetails {
	return &domain.ComplaintDetails{Agency: "UBS Centro", Location: "Sao Paulo, SP"}
}

func TestCreatePost_PrependsAndGrowsByOne(t *testing.T) {
	env := testEnv()
	s := newState(t)
	for _, body := range []string{"first", "second", "third"} {
		before := len(s.Posts())
		s = mustReduce(t, s, feed.CreatePost{Author: member, Body: body}, env)
		posts := s.Posts()
		require.Len(t, posts, before+1)
		assert.Equal(t, body, posts[0].Body)
		assert.Equal(t, member, posts[0].AuthorID)
		assert.False(t, posts[0].IsComplaint())
		assert.Equal(t, fixedNow, posts[0].CreatedAt)
	}
}

func TestCreatePost_DoesNotMutateInput(t *testing.T) {
	s := newState(t)
	next := mustReduce(t, s, feed.CreatePost{Author: member, Body: "Hello"}, testEnv())

	assert.Empty(t, s.Posts())
	assert.Equal(t, int64(1250), s.Active().Coins)
	assert.Len(t, next.Posts(), 1)
}

func TestCreatePost_ComplaintValidation(t *testing.T) {
	tests := []struct {
		name    string
		action  feed.CreatePost
		wantErr bool
	}{
		{
			name:    "complaint without details",
			action:  feed.CreatePost{Author: member, Body: "long wait", IsComplaint: true},
			wantErr: true,
		},
		{
			name: "complaint without agency",
			action: feed.CreatePost{Author: member, Body: "long wait", IsComplaint: true,
				Details: &domain.ComplaintDetails{Location: "Sao Paulo"}},
			wantErr: true,
		},
		{
			name: "complaint without location",
			action: feed.CreatePost{Author: member, Body: "long wait", IsComplaint: true,
				Details: &domain.ComplaintDetails{Agency: "UBS Centro", Location: "  "}},
			wantErr: true,
		},
		{
			name:    "regular post carrying details",
			action:  feed.CreatePost{Author: member, Body: "hello", Details: complaintDetails()},
			wantErr: true,
		},
		{
			name:    "blank body",
			action:  feed.CreatePost{Author: member, Body: "   "},
			wantErr: true,
		},
		{
			name:   "valid complaint",
			action: feed.CreatePost{Author: member, Body: "long wait", IsComplaint: true, Details: complaintDetails()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t)
			next, err := feed.Reduce(s, tt.action, testEnv())
			if !tt.wantErr {
				require.NoError(t, err)
				require.Len(t, next.Posts(), 1)
				c, ok := next.Posts()[0].Complaint()
				require.True(t, ok)
				assert.Equal(t, domain.AwaitingResponse, c.Status())
				return
			}
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), "got %T", err)
			assert.Empty(t, next.Posts())
			assert.Equal(t, int64(1250), next.Active().Coins)
		})
	}
}

func TestCreatePost_UnknownAuthor(t *testing.T) {
	_, err := feed.Reduce(newState(t), feed.CreatePost{Author: "ghost", Body: "boo"}, testEnv())
	assert.True(t, domain.IsNotFound(err))
}

func TestCreatePost_Rewards(t *testing.T) {
	env := testEnv()
	s := mustReduce(t, newState(t), feed.CreatePost{Author: member, Body: "Hello"}, env)
	assert.Equal(t, int64(1255), s.Active().Coins)

	s = mustReduce(t, newState(t), feed.CreatePost{
		Author: member, Body: "Hello", IsComplaint: true, Details: complaintDetails(),
	}, env)
	assert.Equal(t, int64(1260), s.Active().Coins)
}

func complaintState(t *testing.T) (feed.State, domain.PostID) {
	t.Helper()
	s := mustReduce(t, newState(t), feed.CreatePost{
		Author: member, Body: "refused priority care", IsComplaint: true, Details: complaintDetails(),
	}, testEnv())
	return s, s.Posts()[0].ID
}

func TestAttachOfficialResponse_OnlyGovernment(t *testing.T) {
	base, postID := complaintState(t)
	for _, role := range []domain.Role{
		domain.RoleMember, domain.RoleModerator, domain.RoleAdmin, domain.RoleInfluencer,
	} {
		t.Run(role.String(), func(t *testing.T) {
			id := domain.UserID("actor-" + role.String())
			s := mustReduce(t, base, feed.RegisterAccount{Account: domain.Account{ID: id, Name: "Actor", Role: role}}, testEnv())

			next, err := feed.Reduce(s, feed.AttachOfficialResponse{Requester: id, Post: postID, Text: "noted"}, testEnv())
			require.Error(t, err)
			assert.True(t, domain.IsAuthorization(err))

			post, ok := next.Post(postID)
			require.True(t, ok)
			c, _ := post.Complaint()
			assert.Nil(t, c.Response)
		})
	}
}

func TestAttachOfficialResponse_UnknownRequesterIsUnauthorized(t *testing.T) {
	s, postID := complaintState(t)
	_, err := feed.Reduce(s, feed.AttachOfficialResponse{Requester: "nobody", Post: postID, Text: "x"}, testEnv())
	assert.True(t, domain.IsAuthorization(err))
}

func TestAttachOfficialResponse_Overwrites(t *testing.T) {
	env := testEnv()
	s, postID := complaintState(t)

	s = mustReduce(t, s, feed.AttachOfficialResponse{Requester: gov, Post: postID, Text: "We are investigating."}, env)
	s = mustReduce(t, s, feed.AttachOfficialResponse{Requester: gov, Post: postID, Text: "Staff retrained."}, env)

	post, _ := s.Post(postID)
	c, ok := post.Complaint()
	require.True(t, ok)
	require.NotNil(t, c.Response)
	assert.Equal(t, domain.Responded, c.Status())
	assert.Equal(t, "Staff retrained.", c.Response.Text)
	assert.Equal(t, "Secretaria de Saude - SP", c.Response.ResponderName)
	assert.Equal(t, gov, c.Response.ResponderID)
	assert.True(t, c.Response.Verified)
}

func TestAttachOfficialResponse_Errors(t *testing.T) {
	env := testEnv()
	s, complaintID := complaintState(t)
	s = mustReduce(t, s, feed.CreatePost{Author: member, Body: "regular"}, env)
	regularID := s.Posts()[0].ID

	_, err := feed.Reduce(s, feed.AttachOfficialResponse{Requester: gov, Post: "missing", Text: "x"}, env)
	assert.True(t, domain.IsNotFound(err))

	_, err = feed.Reduce(s, feed.AttachOfficialResponse{Requester: gov, Post: regularID, Text: "x"}, env)
	assert.True(t, domain.IsNotFound(err))

	_, err = feed.Reduce(s, feed.AttachOfficialResponse{Requester: gov, Post: complaintID, Text: " "}, env)
	assert.True(t, domain.IsValidation(err))
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	env := testEnv()
	s := mustReduce(t, newState(t), feed.CreatePost{Author: member, Body: "mine"}, env)
	id := s.Posts()[0].ID

	s = mustReduce(t, s, feed.DeletePost{Requester: friend, Post: id}, env)
	assert.Len(t, s.Posts(), 1)

	s = mustReduce(t, s, feed.DeletePost{Requester: member, Post: "missing"}, env)
	assert.Len(t, s.Posts(), 1)

	s = mustReduce(t, s, feed.DeletePost{Requester: member, Post: id}, env)
	assert.Empty(t, s.Posts())
}

func TestToggleFollow_IsAnInvolution(t *testing.T) {
	pairs := []struct{ actor, target domain.UserID }{
		{member, friend},
		{member, gov},
		{member, member},
		{member, "stranger"},
	}
	for _, p := range pairs {
		t.Run(string(p.actor)+"->"+string(p.target), func(t *testing.T) {
			env := testEnv()
			s := mustReduce(t, newState(t), feed.ToggleFollow{Actor: friend, Target: member}, env)

			once := mustReduce(t, s, feed.ToggleFollow{Actor: p.actor, Target: p.target}, env)
			assert.True(t, once.IsFollowing(p.actor, p.target))

			twice := mustReduce(t, once, feed.ToggleFollow{Actor: p.actor, Target: p.target}, env)
			assert.Equal(t, s.Follows(), twice.Follows())
			assert.Equal(t, s.Accounts(), twice.Accounts())
		})
	}
}

func TestToggleFollow_AdjustsCounters(t *testing.T) {
	s := mustReduce(t, newState(t), feed.ToggleFollow{Actor: member, Target: friend}, testEnv())
	me, _ := s.Account(member)
	them, _ := s.Account(friend)
	assert.Equal(t, 121, me.Following)
	assert.Equal(t, 11, them.Followers)
}

func TestTransferCoins_Scenario(t *testing.T) {
	env := testEnv()
	s := newState(t)

	next, err := feed.Reduce(s, feed.TransferCoins{Sender: member, Recipient: friend, Amount: 2000}, env)
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientFunds(err))
	assert.Equal(t, int64(1250), next.Active().Coins)
	assert.Empty(t, next.Ledger(member))

	next = mustReduce(t, next, feed.TransferCoins{Sender: member, Recipient: friend, Amount: 100}, env)
	assert.Equal(t, int64(1150), next.Active().Coins)
	ledger := next.Ledger(member)
	require.Len(t, ledger, 1)
	assert.Equal(t, domain.Debit, ledger[0].Direction)
	assert.Equal(t, int64(100), ledger[0].Amount)
	assert.Equal(t, int64(-100), ledger[0].Signed())
	assert.Equal(t, friend, ledger[0].Counterparty)

	recipient, _ := next.Account(friend)
	assert.Equal(t, int64(100), recipient.Coins)
	credits := next.Ledger(friend)
	require.Len(t, credits, 1)
	assert.Equal(t, domain.Credit, credits[0].Direction)
}

func TestTransferCoins_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		action feed.TransferCoins
		check  func(error) bool
	}{
		{"zero amount", feed.TransferCoins{Sender: member, Recipient: friend, Amount: 0}, domain.IsInsufficientFunds},
		{"negative amount", feed.TransferCoins{Sender: member, Recipient: friend, Amount: -5}, domain.IsInsufficientFunds},
		{"whole balance plus one", feed.TransferCoins{Sender: member, Recipient: friend, Amount: 1251}, domain.IsInsufficientFunds},
		{"unknown recipient", feed.TransferCoins{Sender: member, Recipient: "ghost", Amount: 10}, domain.IsNotFound},
		{"self transfer", feed.TransferCoins{Sender: member, Recipient: member, Amount: 10}, domain.IsValidation},
		{"unknown sender", feed.TransferCoins{Sender: "ghost", Recipient: friend, Amount: 10}, domain.IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newState(t)
			next, err := feed.Reduce(s, tt.action, testEnv())
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
			assert.Equal(t, int64(1250), next.Active().Coins)
			assert.Empty(t, next.Ledger(member))
			assert.Empty(t, next.Ledger(friend))
		})
	}
}

func TestTransferCoins_WholeBalance(t *testing.T) {
	s := mustReduce(t, newState(t), feed.TransferCoins{Sender: member, Recipient: friend, Amount: 1250}, testEnv())
	assert.Equal(t, int64(0), s.Active().Coins)
}

func TestGovernmentMode(t *testing.T) {
	env := testEnv()
	s := newState(t)

	rejected, err := feed.Reduce(s, feed.EnterGovernmentMode{RegistrationID: "1"}, env)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, domain.RoleMember, rejected.Active().Role)

	elevated := mustReduce(t, s, feed.EnterGovernmentMode{RegistrationID: "123456"}, env)
	assert.Equal(t, domain.RoleGovernment, elevated.Active().Role)
	assert.Equal(t, gov, elevated.Active().ID)
	assert.True(t, elevated.InGovernmentMode())

	_, err = feed.Reduce(elevated, feed.EnterGovernmentMode{RegistrationID: "123456"}, env)
	assert.True(t, domain.IsValidation(err))

	restored := mustReduce(t, elevated, feed.ExitGovernmentMode{}, env)
	assert.Equal(t, member, restored.Active().ID)
	assert.Equal(t, int64(1250), restored.Active().Coins)
	assert.False(t, restored.InGovernmentMode())

	again := mustReduce(t, restored, feed.ExitGovernmentMode{}, env)
	assert.Equal(t, member, again.Active().ID)
}

func TestGovernmentMode_ResponderFlow(t *testing.T) {
	env := testEnv()
	s, postID := complaintState(t)

	_, err := feed.Reduce(s, feed.AttachOfficialResponse{Requester: s.Active().ID, Post: postID, Text: "hi"}, env)
	require.True(t, domain.IsAuthorization(err))

	s = mustReduce(t, s, feed.EnterGovernmentMode{RegistrationID: "00.000.000/0001-00"}, env)
	s = mustReduce(t, s, feed.AttachOfficialResponse{Requester: s.Active().ID, Post: postID, Text: "hi"}, env)
	post, _ := s.Post(postID)
	c, _ := post.Complaint()
	assert.Equal(t, domain.Responded, c.Status())
}

func TestSendMessage(t *testing.T) {
	env := testEnv()
	s := mustReduce(t, newState(t), feed.OpenConversation{Peer: friend}, env)
	conv, ok := s.ConversationWith(friend)
	require.True(t, ok)
	assert.Equal(t, "Carlos Santos", conv.Title)

	s = mustReduce(t, s, feed.SendMessage{Conversation: conv.ID, Sender: member, Text: "Oi!"}, env)
	s = mustReduce(t, s, feed.SendMessage{Conversation: conv.ID, Sender: friend, Text: "Tudo bem?"}, env)

	got, _ := s.Conversation(conv.ID)
	require.Len(t, got.Messages, 2)
	assert.True(t, got.Messages[0].FromActive)
	assert.False(t, got.Messages[1].FromActive)
	assert.Equal(t, "Tudo bem?", got.Messages[1].Text)

	_, err := feed.Reduce(s, feed.SendMessage{Conversation: conv.ID, Sender: member, Text: " "}, env)
	assert.True(t, domain.IsValidation(err))
	_, err = feed.Reduce(s, feed.SendMessage{Conversation: "nope", Sender: member, Text: "hello"}, env)
	assert.True(t, domain.IsValidation(err))
}

func TestOpenConversation_ReusesExisting(t *testing.T) {
	env := testEnv()
	s := mustReduce(t, newState(t), feed.OpenConversation{Peer: friend, Title: "Carlos"}, env)
	s = mustReduce(t, s, feed.OpenConversation{Peer: friend, Title: "Other"}, env)
	assert.Len(t, s.Conversations(), 1)

	_, err := feed.Reduce(s, feed.OpenConversation{Peer: "ghost"}, env)
	assert.True(t, domain.IsNotFound(err))
}

func TestRewardsAndStories(t *testing.T) {
	env := testEnv()
	s := mustReduce(t, newState(t), feed.ClaimReward{Actor: member, Reward: feed.RewardVideo}, env)
	assert.Equal(t, int64(1260), s.Active().Coins)

	s = mustReduce(t, s, feed.SubmitStory{Actor: member, Text: "My son said his first word."}, env)
	assert.Equal(t, int64(1310), s.Active().Coins)
	assert.Empty(t, s.Ledger(member))

	_, err := feed.Reduce(s, feed.SubmitStory{Actor: member, Text: ""}, env)
	assert.True(t, domain.IsValidation(err))
	_, err = feed.Reduce(s, feed.ClaimReward{Actor: member, Reward: "daily"}, env)
	assert.True(t, domain.IsValidation(err))
}

func TestAdsAndProfile(t *testing.T) {
	env := testEnv()
	s := mustReduce(t, newState(t), feed.CreateAd{Title: "Clinica Integrar", Body: "Sensory friendly therapy"}, env)
	require.Len(t, s.Ads(), 1)
	adID := s.Ads()[0].ID

	_, err := feed.Reduce(s, feed.CreateAd{Title: "", Body: "x"}, env)
	assert.True(t, domain.IsValidation(err))

	s = mustReduce(t, s, feed.DeleteAd{Ad: adID}, env)
	assert.Empty(t, s.Ads())

	name, city, empty := "Gabriel S.", "Campinas", " "
	s = mustReduce(t, s, feed.UpdateProfile{Account: member, Patch: domain.ProfilePatch{Name: &name, City: &city}}, env)
	assert.Equal(t, "Gabriel S.", s.Active().Name)
	assert.Equal(t, "Campinas", s.Active().City)

	_, err = feed.Reduce(s, feed.UpdateProfile{Account: member, Patch: domain.ProfilePatch{Name: &empty}}, env)
	assert.True(t, domain.IsValidation(err))

	s = mustReduce(t, s, feed.SetAvatar{Account: member, ImageRef: "data:image/png;base64,AA=="}, env)
	assert.Equal(t, "data:image/png;base64,AA==", s.Active().AvatarRef)
}

func TestFeedFilterAndStats(t *testing.T) {
	env := testEnv()
	s := mustReduce(t, newState(t), feed.CreatePost{Author: member, Body: "a"}, env)
	s = mustReduce(t, s, feed.CreatePost{Author: friend, Body: "b", IsComplaint: true, Details: complaintDetails()}, env)
	s = mustReduce(t, s, feed.CreatePost{Author: member, Body: "c"}, env)

	assert.Len(t, s.Feed(feed.FilterAll), 3)
	complaints := s.Feed(feed.FilterComplaints)
	require.Len(t, complaints, 1)
	assert.Equal(t, "b", complaints[0].Body)

	assert.Equal(t, domain.ProfileStats{Posts: 2}, s.ProfileStats(member))
}

func TestRegisterAccount_Duplicate(t *testing.T) {
	_, err := feed.Reduce(newState(t), feed.RegisterAccount{Account: domain.Account{ID: friend, Name: "Again"}}, testEnv())
	assert.True(t, domain.IsValidation(err))
}

func TestNew_RequiresGovernmentRole(t *testing.T) {
	_, err := feed.New(
		domain.Account{ID: member, Name: "m"},
		domain.Account{ID: gov, Name: "not really", Role: domain.RoleAdmin},
	)
	assert.Error(t, err)
}
