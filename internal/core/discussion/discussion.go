// Package discussion defines the discussion-thread documents served by an
// Anubis server and the identity keys the editor lifecycle is built on.
package discussion

import (
	"fmt"
	"strings"
)

// RepliesPerPage is the server's reply pagination size.
const RepliesPerPage = 50

// AnchorID is the stable identity of one media body (a comment or reply
// display region) and its trigger controls. It keys the editor registry:
// the association carries no ownership of the rendered region.
type AnchorID string

// AnchorNewComment is the placeholder slot for a brand-new top-level comment.
const AnchorNewComment AnchorID = "new-comment"

// CommentAnchor returns the anchor for a top-level comment (a reply document
// directly under the discussion).
func CommentAnchor(drid string) AnchorID {
	return AnchorID("comment:" + drid)
}

// TailAnchor returns the anchor for a tail reply nested under a comment.
func TailAnchor(drid, drrid string) AnchorID {
	return AnchorID(fmt.Sprintf("tail:%s:%s", drid, drrid))
}

// ParentComment extracts the parent comment id from a tail anchor. It
// reports false for anchors that are not tail anchors.
func ParentComment(a AnchorID) (string, bool) {
	rest, ok := strings.CutPrefix(string(a), "tail:")
	if !ok {
		return "", false
	}
	drid, _, ok := strings.Cut(rest, ":")
	if !ok || drid == "" {
		return "", false
	}
	return drid, true
}

// Discussion is one discussion document with its reply tree.
type Discussion struct {
	ID      string  `json:"did"`
	Title   string  `json:"title"`
	Owner   string  `json:"owner"`
	Content string  `json:"content"`
	RawURL  string  `json:"raw_url"`
	Starred bool    `json:"star"`
	Views   int     `json:"views"`
	Replies []Reply `json:"replies"`
	Page    int     `json:"page"`
	Pages   int     `json:"page_count"`
}

// Reply is a top-level comment on a discussion. The UI calls these comments;
// the server calls them replies. Tail holds the nested replies-to-comments.
type Reply struct {
	ID      string      `json:"drid"`
	Owner   string      `json:"owner"`
	Content string      `json:"content"`
	RawURL  string      `json:"raw_url"`
	Tail    []TailReply `json:"tail"`
}

// TailReply is a nested reply attached to one comment.
type TailReply struct {
	ID      string `json:"drrid"`
	Owner   string `json:"owner"`
	Content string `json:"content"`
	RawURL  string `json:"raw_url"`
}

// Anchor returns the reply's registry identity.
func (r Reply) Anchor() AnchorID { return CommentAnchor(r.ID) }

// Anchor returns the tail reply's registry identity under its parent comment.
func (t TailReply) Anchor(parent Reply) AnchorID { return TailAnchor(parent.ID, t.ID) }

// Reply returns the comment with the given id, if present.
func (d *Discussion) Reply(drid string) (Reply, bool) {
	for _, r := range d.Replies {
		if r.ID == drid {
			return r, true
		}
	}
	return Reply{}, false
}
