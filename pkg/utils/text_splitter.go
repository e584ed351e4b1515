package utils

// SplitText cuts text into chunks of at most chunkSize runes, with each
// chunk repeating the last overlap runes of the previous one so that a
// sentence straddling a boundary still appears whole somewhere. Slicing
// is rune-based; byte offsets would split multibyte characters.
func SplitText(text string, chunkSize int, overlap int) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		// Nonsense overlap would loop forever; fall back to disjoint chunks.
		step = chunkSize
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
