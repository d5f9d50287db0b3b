package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "POST#123", Normalize(PostPrefix, "123"))
	assert.Equal(t, "POST#123", Normalize(PostPrefix, "POST#123"), "normalizing twice must not double-prefix")
	assert.Equal(t, "USER#", Normalize(UserPrefix, ""))
}

func TestPostKey(t *testing.T) {
	pk, sk := PostKey("abc")
	assert.Equal(t, "POST#abc", pk)
	assert.Equal(t, MetadataSK, sk)
}

func TestCommentKey(t *testing.T) {
	pk, sk := CommentKey("post-1", "comment-1")
	assert.Equal(t, "POST#post-1", pk)
	assert.Equal(t, "COMMENT#comment-1", sk)

	// Already-prefixed identifiers pass through unchanged.
	pk, sk = CommentKey("POST#post-1", "COMMENT#comment-1")
	assert.Equal(t, "POST#post-1", pk)
	assert.Equal(t, "COMMENT#comment-1", sk)
}

func TestProfileKey(t *testing.T) {
	pk, sk := ProfileKey("user-1")
	assert.Equal(t, "USER#user-1", pk)
	assert.Equal(t, ProfileSK, sk)
}
