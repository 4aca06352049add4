package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// PostKind is either RegularPost or ComplaintPost.
type PostKind interface {
	postKind() string
}

// RegularPost is an ordinary feed post.
type RegularPost struct{}

func (RegularPost) postKind() string { return "regular" }

// ComplaintPost is a public report against an agency, eligible for an
// official response from a government account.
type ComplaintPost struct {
	Details  ComplaintDetails
	Response *OfficialResponse
}

func (ComplaintPost) postKind() string { return "complaint" }

// ComplaintStatus is the response state of a complaint.
type ComplaintStatus string

const (
	AwaitingResponse ComplaintStatus = "awaiting_response"
	Responded        ComplaintStatus = "responded"
)

// Status reports whether an official response has been attached.
func (c ComplaintPost) Status() ComplaintStatus {
	if c.Response != nil {
		return Responded
	}
	return AwaitingResponse
}

// ComplaintDetails names the agency and where the incident happened.
type ComplaintDetails struct {
	Agency   string `json:"agency"`
	Location string `json:"location"`
}

// OfficialResponse is attached by a government account to a complaint.
type OfficialResponse struct {
	Text          string    `json:"text"`
	ResponderID   UserID    `json:"responder_id"`
	ResponderName string    `json:"responder_name"`
	At            time.Time `json:"at"`
	Verified      bool      `json:"verified"`
}

// Post is a single feed entry.
type Post struct {
	ID        PostID
	AuthorID  UserID
	Body      string
	ImageRef  string
	Likes     int
	Comments  int
	CreatedAt time.Time
	Kind      PostKind
}

// Complaint returns the complaint payload when p is a complaint post.
func (p Post) Complaint() (ComplaintPost, bool) {
	c, ok := p.Kind.(ComplaintPost)
	return c, ok
}

// IsComplaint reports whether p is a complaint post.
func (p Post) IsComplaint() bool {
	_, ok := p.Complaint()
	return ok
}

// KindName returns "regular" or "complaint".
func (p Post) KindName() string {
	if p.Kind == nil {
		return RegularPost{}.postKind()
	}
	return p.Kind.postKind()
}

// postWire is the JSON layout of a Post; the kind is flattened behind a
// "type" discriminator.
type postWire struct {
	ID        PostID            `json:"id"`
	AuthorID  UserID            `json:"author_id"`
	Body      string            `json:"body"`
	ImageRef  string            `json:"image_ref,omitempty"`
	Likes     int               `json:"likes"`
	Comments  int               `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
	Type      string            `json:"type"`
	Complaint *ComplaintDetails `json:"complaint,omitempty"`
	Response  *OfficialResponse `json:"official_response,omitempty"`
}

// MarshalJSON encodes the kind as a "type" field.
func (p Post) MarshalJSON() ([]byte, error) {
	w := postWire{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Body:      p.Body,
		ImageRef:  p.ImageRef,
		Likes:     p.Likes,
		Comments:  p.Comments,
		CreatedAt: p.CreatedAt,
		Type:      p.KindName(),
	}
	if c, ok := p.Complaint(); ok {
		details := c.Details
		w.Complaint = &details
		w.Response = c.Response
	}
	return json.Marshal(w)
}

// UnmarshalJSON mirrors MarshalJSON.
func (p *Post) UnmarshalJSON(data []byte) error {
	var w postWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Post{
		ID:        w.ID,
		AuthorID:  w.AuthorID,
		Body:      w.Body,
		ImageRef:  w.ImageRef,
		Likes:     w.Likes,
		Comments:  w.Comments,
		CreatedAt: w.CreatedAt,
	}
	switch w.Type {
	case "", "regular":
		if w.Complaint != nil || w.Response != nil {
			return fmt.Errorf("post %s: complaint fields on a regular post", w.ID)
		}
		p.Kind = RegularPost{}
	case "complaint":
		if w.Complaint == nil {
			return fmt.Errorf("post %s: complaint without details", w.ID)
		}
		p.Kind = ComplaintPost{Details: *w.Complaint, Response: w.Response}
	default:
		return fmt.Errorf("post %s: unknown type %q", w.ID, w.Type)
	}
	return nil
}
