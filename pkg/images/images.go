package images

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// AvatarSize is the edge length every stored avatar is normalized to.
const AvatarSize = 250

// NormalizeAvatar decodes an uploaded JPEG or PNG, resizes it to exactly
// AvatarSize x AvatarSize (aspect ratio is not preserved, matching the API's
// documented behavior) and re-encodes it as PNG.
func NormalizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode avatar image: %w", err)
	}

	resized := imaging.Resize(img, AvatarSize, AvatarSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode avatar PNG: %w", err)
	}
	return buf.Bytes(), nil
}
