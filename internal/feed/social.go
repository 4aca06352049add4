package feed

import (
	"slices"

	"autistnet/internal/domain"
)

func (ToggleFollow) name() string { return "toggle_follow" }

func (a ToggleFollow) apply(s *State, _ Env) error {
	if a.Actor == "" || a.Target == "" {
		return domain.Validationf("follow needs both an actor and a target")
	}
	edge := domain.FollowEdge{Follower: a.Actor, Followee: a.Target}
	delta := 1
	if _, on := s.follows[edge]; on {
		delete(s.follows, edge)
		delta = -1
	} else {
		s.follows[edge] = struct{}{}
	}

	if actor, ok := s.accounts[a.Actor]; ok {
		actor.Following += delta
		s.accounts[actor.ID] = actor
	}
	if target, ok := s.accounts[a.Target]; ok {
		target.Followers += delta
		s.accounts[target.ID] = target
	}
	return nil
}

func (CreateAd) name() string { return "create_ad" }

func (a CreateAd) apply(s *State, env Env) error {
	if blank(a.Title) || blank(a.Body) {
		return domain.Validationf("ads need a title and a body")
	}
	s.ads = append(s.ads, domain.Ad{
		ID:       domain.AdID(env.newID("ad_")),
		Title:    a.Title,
		Body:     a.Body,
		ImageRef: a.ImageRef,
		Link:     a.Link,
	})
	return nil
}

func (DeleteAd) name() string { return "delete_ad" }

func (a DeleteAd) apply(s *State, _ Env) error {
	s.ads = slices.DeleteFunc(s.ads, func(ad domain.Ad) bool { return ad.ID == a.Ad })
	return nil
}
