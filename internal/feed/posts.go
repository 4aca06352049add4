package feed

import (
	"slices"

	"autistnet/internal/domain"
)

func (CreatePost) name() string { return "create_post" }

func (a CreatePost) apply(s *State, env Env) error {
	if blank(a.Body) {
		return domain.Validationf("post text is required")
	}
	var kind domain.PostKind = domain.RegularPost{}
	reward := env.Policy.PostReward
	if a.IsComplaint {
		if a.Details == nil || blank(a.Details.Agency) || blank(a.Details.Location) {
			return domain.Validationf("complaints need both the agency and the location")
		}
		kind = domain.ComplaintPost{Details: *a.Details}
		reward = env.Policy.ComplaintReward
	} else if a.Details != nil {
		return domain.Validationf("complaint details given for a regular post")
	}

	author, err := s.mustAccount(a.Author)
	if err != nil {
		return err
	}

	post := domain.Post{
		ID:        domain.PostID(env.newID("p_")),
		AuthorID:  author.ID,
		Body:      a.Body,
		ImageRef:  a.ImageRef,
		CreatedAt: env.now(),
		Kind:      kind,
	}
	s.posts = slices.Insert(s.posts, 0, post)

	author.Coins += reward
	s.accounts[author.ID] = author
	return nil
}

func (DeletePost) name() string { return "delete_post" }

func (a DeletePost) apply(s *State, _ Env) error {
	i := s.postIndex(a.Post)
	if i < 0 || s.posts[i].AuthorID != a.Requester {
		return nil
	}
	s.posts = slices.Delete(s.posts, i, i+1)
	return nil
}

func (AttachOfficialResponse) name() string { return "attach_official_response" }

func (a AttachOfficialResponse) apply(s *State, env Env) error {
	requester, ok := s.accounts[a.Requester]
	if !ok || !requester.Role.CanRespondToComplaints() {
		return domain.Unauthorizedf("only government accounts can answer complaints")
	}
	i := s.postIndex(a.Post)
	if i < 0 {
		return domain.NotFound("post", a.Post.String())
	}
	complaint, ok := s.posts[i].Complaint()
	if !ok {
		return domain.NotFound("complaint", a.Post.String())
	}
	if blank(a.Text) {
		return domain.Validationf("response text is required")
	}

	complaint.Response = &domain.OfficialResponse{
		Text:          a.Text,
		ResponderID:   requester.ID,
		ResponderName: requester.Name,
		At:            env.now(),
		Verified:      true,
	}
	s.posts[i].Kind = complaint
	return nil
}
