package domain

// Event types understood by the notification dispatcher.
const (
	EventTypeNewComment = "NEW_COMMENT"
	EventTypeNewPost    = "NEW_POST"
	EventTypeNewUser    = "NEW_USER"
)

// NotificationEvent is the payload handed to the notification bus after a
// successful create. Fields not used by a given event type are omitted from
// the serialized form entirely, never sent as null.
type NotificationEvent struct {
	EventType       string   `json:"eventType"`
	AuthorEmail     string   `json:"authorEmail,omitempty"`
	AuthorName      string   `json:"authorName,omitempty"`
	PostTitle       string   `json:"postTitle,omitempty"`
	PostID          string   `json:"postId,omitempty"`
	CommenterName   string   `json:"commenterName,omitempty"`
	CommentContent  string   `json:"commentContent,omitempty"`
	UserEmail       string   `json:"userEmail,omitempty"`
	UserName        string   `json:"userName,omitempty"`
	RecipientEmails []string `json:"recipientEmails,omitempty"`
}

// NewCommentEvent notifies a post's author that someone commented.
func NewCommentEvent(authorEmail, authorName, postTitle, commenterName, commentContent, postID string) NotificationEvent {
	return NotificationEvent{
		EventType:      EventTypeNewComment,
		AuthorEmail:    authorEmail,
		AuthorName:     authorName,
		PostTitle:      postTitle,
		CommenterName:  commenterName,
		CommentContent: commentContent,
		PostID:         postID,
	}
}

// NewPostEvent notifies subscribed users that a post was published.
func NewPostEvent(authorName, postTitle string, recipientEmails []string) NotificationEvent {
	return NotificationEvent{
		EventType:       EventTypeNewPost,
		AuthorName:      authorName,
		PostTitle:       postTitle,
		RecipientEmails: recipientEmails,
	}
}

// NewUserEvent welcomes a newly registered user.
func NewUserEvent(userEmail, userName string) NotificationEvent {
	return NotificationEvent{
		EventType: EventTypeNewUser,
		UserEmail: userEmail,
		UserName:  userName,
	}
}
