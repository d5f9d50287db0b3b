package repository

import "strings"

// Key prefixes and fixed sort keys for the single content table. Every
// entity type shares the table; the prefix on the key value is what keeps
// them apart.
const (
	PostPrefix    = "POST#"
	CommentPrefix = "COMMENT#"
	UserPrefix    = "USER#"

	MetadataSK = "METADATA"
	ProfileSK  = "PROFILE"
)

// Normalize prepends prefix to raw unless it is already there. Callers pass
// both raw identifiers and fully-formed key values; normalizing twice must
// not double-prefix.
func Normalize(prefix, raw string) string {
	if strings.HasPrefix(raw, prefix) {
		return raw
	}
	return prefix + raw
}

// PostKey returns the primary key of a post's metadata item.
func PostKey(postID string) (pk, sk string) {
	return Normalize(PostPrefix, postID), MetadataSK
}

// CommentKey returns the primary key of a comment item, co-located in its
// parent post's partition.
func CommentKey(postID, commentID string) (pk, sk string) {
	return Normalize(PostPrefix, postID), Normalize(CommentPrefix, commentID)
}

// ProfileKey returns the primary key of a user's profile item.
func ProfileKey(userID string) (pk, sk string) {
	return Normalize(UserPrefix, userID), ProfileSK
}
