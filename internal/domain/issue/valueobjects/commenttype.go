package valueobjects

type CommentType string

const (
	CommentTypeMessage      CommentType = "MESSAGE"
	CommentTypeStatusChange CommentType = "STATUS_CHANGE"
	CommentTypeFieldChange  CommentType = "FIELD_CHANGE"
	CommentTypeSystem       CommentType = "SYSTEM"
)

func (t CommentType) String() string {
	return string(t)
}

func (t CommentType) IsValid() bool {
	switch t {
	case CommentTypeMessage, CommentTypeStatusChange, CommentTypeFieldChange, CommentTypeSystem:
		return true
	}
	return false
}

// IsEditable is true only for human replies.
func (t CommentType) IsEditable() bool {
	return t == CommentTypeMessage
}

// AuthorType records who wrote a MESSAGE.
type AuthorType string

const (
	AuthorTypeUser      AuthorType = "USER"
	AuthorTypeAdmin     AuthorType = "ADMIN"
	AuthorTypeDeveloper AuthorType = "DEVELOPER"
	AuthorTypeSupport   AuthorType = "SUPPORT"
)

func (a AuthorType) String() string {
	return string(a)
}

func (a AuthorType) IsValid() bool {
	switch a {
	case AuthorTypeUser, AuthorTypeAdmin, AuthorTypeDeveloper, AuthorTypeSupport:
		return true
	}
	return false
}
