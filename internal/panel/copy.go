package panel

import "time"

// CopyFeedbackDelay is how long the copy label shows its confirmation.
const CopyFeedbackDelay = 2 * time.Second

// Copy button labels.
const (
	LabelCopy   = "📋 Copy"
	LabelCopied = "✓ Copied!"
)

// Clipboard receives copied text.
type Clipboard interface {
	Copy(text string) error
}

// Copy writes the generated statement verbatim to cb and turns on the copy
// confirmation. The returned sequence number must be passed to ResetCopied
// once CopyFeedbackDelay has elapsed.
func (p *Panel) Copy(cb Clipboard) (uint64, error) {
	if err := cb.Copy(p.statement); err != nil {
		return 0, err
	}
	p.copySeq++
	p.copied = true
	return p.copySeq, nil
}

// ResetCopied turns the confirmation off unless a newer copy has happened
// since seq was issued.
func (p *Panel) ResetCopied(seq uint64) bool {
	if seq != p.copySeq || !p.copied {
		return false
	}
	p.copied = false
	return true
}

// Copied reports whether the copy confirmation is showing.
func (p *Panel) Copied() bool { return p.copied }

// CopyLabel returns the label for the copy control.
func (p *Panel) CopyLabel() string {
	if p.copied {
		return LabelCopied
	}
	return LabelCopy
}
