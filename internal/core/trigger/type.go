package trigger

// Type identifies the kind of UI trigger an interaction fired.
type Type string

// The named triggers the action router dispatches on.
const (
	TypeOpenNewComment Type = "open-new-comment"
	TypeReplyToComment Type = "reply-to-comment"
	TypeReplyToReply   Type = "reply-to-reply"
	TypeEditComment    Type = "edit-comment"
	TypeEditReply      Type = "edit-reply"
	TypeDeleteComment  Type = "delete-comment"
	TypeDeleteReply    Type = "delete-reply"
)

// Types lists every trigger in dispatch-table order.
func Types() []Type {
	return []Type{
		TypeOpenNewComment,
		TypeReplyToComment,
		TypeReplyToReply,
		TypeEditComment,
		TypeEditReply,
		TypeDeleteComment,
		TypeDeleteReply,
	}
}

// Valid reports whether t is one of the named triggers.
func (t Type) Valid() bool {
	switch t {
	case TypeOpenNewComment, TypeReplyToComment, TypeReplyToReply,
		TypeEditComment, TypeEditReply, TypeDeleteComment, TypeDeleteReply:
		return true
	}
	return false
}

// Destructive reports whether the trigger requires a confirmation gate.
func (t Type) Destructive() bool {
	return t == TypeDeleteComment || t == TypeDeleteReply
}
