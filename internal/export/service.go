package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/boardinghub/boardinghub/internal/billing"
)

// Item represents a single exported payment with the local path of its
// proof image, when one was downloaded.
type Item struct {
	History  *billing.PaymentHistory
	FilePath string
}

// Service assembles a landlord's payment register: the payment-history
// records for a period plus the proof images backing them.
type Service struct {
	bills  *billing.Service
	client *http.Client
}

func NewService(bills *billing.Service) *Service {
	return &Service{
		bills:  bills,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Export downloads proof images for payments matching the filter to
// the output directory. It returns items linking history records to
// their downloaded files.
func (s *Service) Export(ctx context.Context, filter billing.HistoryFilter, outputDir string) ([]Item, error) {
	history, err := s.bills.History(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing payment history: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(history))

	for _, h := range history {
		item := Item{History: h}

		imageURL, err := s.proofImageURL(ctx, h)
		if err != nil {
			return nil, err
		}

		if imageURL != "" {
			path, err := s.downloadProof(ctx, h, imageURL, outputDir)
			if err != nil {
				return nil, fmt.Errorf("downloading proof for receipt %s: %w", h.ReceiptID, err)
			}

			item.FilePath = path
		}

		items = append(items, item)
	}

	return items, nil
}

// proofImageURL finds the approved proof backing the payment, if the
// bill was settled through the proof flow at all.
func (s *Service) proofImageURL(ctx context.Context, h *billing.PaymentHistory) (string, error) {
	status := billing.ProofApproved

	proofs, err := s.bills.ListProofs(ctx, billing.ProofFilter{
		BillID: &h.BillID,
		Status: &status,
	})
	if err != nil {
		return "", fmt.Errorf("listing proofs for bill %s: %w", h.BillID, err)
	}

	if len(proofs) == 0 {
		return "", nil
	}

	return proofs[0].ImageURL, nil
}

func (s *Service) downloadProof(ctx context.Context, h *billing.PaymentHistory, imageURL, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, imageURL)
	}

	filename := s.determineFilename(resp, h)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

func (s *Service) determineFilename(resp *http.Response, h *billing.PaymentHistory) string {
	// 1. Try to get filename from Content-Disposition header.
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if filename, ok := params["filename"]; ok && filename != "" {
				return strings.ReplaceAll(filepath.Base(filename), " ", "_")
			}
		}
	}

	// 2. Fallback: generate a name from the receipt.
	ext := ".jpg"

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	return fmt.Sprintf("%s_%s%s", h.PaidAt.Format("20060102"), h.ReceiptID, ext)
}

// GenerateSummary creates a plain-text payment register from the
// exported items, one line per receipt.
func (s *Service) GenerateSummary(items []Item) string {
	var sb strings.Builder

	var totalCents int64

	for _, item := range items {
		h := item.History
		amount := float64(h.AmountCents) / 100.0
		totalCents += h.AmountCents

		fileStatus := "no proof image"
		if item.FilePath != "" {
			fileStatus = filepath.Base(item.FilePath)
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %s | %.2f | %s\n",
			h.PaidAt.Format(time.DateOnly), h.ReceiptID, h.InvoiceID, amount, fileStatus))
	}

	sb.WriteString(fmt.Sprintf("Total: %.2f (%d payments)\n", float64(totalCents)/100.0, len(items)))

	return sb.String()
}
