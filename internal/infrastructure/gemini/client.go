package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/eccues/eccues-bot/internal/domain/entity"
	"github.com/eccues/eccues-bot/internal/domain/repository"
)

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	sem    chan struct{}
	mu     sync.Mutex
	last   time.Time
	delay  time.Duration
}

// NewGeminiClient yangi Gemini AI client yaratish
func NewGeminiClient(apiKey string) (repository.AIRepository, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash-exp")

	// Model konfiguratsiyasi - aniq javoblar uchun
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)

	// System instruction - bilyard kiy do'konining sotuvchisi sifatida
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{
			genai.Text(`Bạn là nhân viên tư vấn của shop cơ bi-a ECCues. Trả lời khách bằng tiếng Việt, ngắn gọn và thân thiện.

QUY TẮC BẮT BUỘC:
1. CHỈ báo giá cho sản phẩm có trong danh sách "SẢN PHẨM LIÊN QUAN" được gửi kèm. KHÔNG tự bịa mã hoặc giá.
2. Giá luôn ghi kèm đơn vị "triệu" (ví dụ: 17 triệu).
3. Mỗi mẫu có hai loại: Thường và Cao cấp. Khi khách hỏi giá, nêu cả hai nếu có.
4. Nếu sản phẩm khách hỏi không có trong danh sách, trả lời là hiện chưa có và mời khách gửi mã hoặc tên mẫu khác.
5. Để chốt đơn, hướng khách liên hệ Telegram @eccues.
6. Không bàn chuyện ngoài sản phẩm của shop.`),
		},
	}

	return &geminiClient{
		client: client,
		model:  model,
		sem:    make(chan struct{}, 3), // bir vaqtda 3 ta so'rovdan oshirma
		delay:  350 * time.Millisecond, // minimal interval
	}, nil
}

// GenerateReply tarix bilan javob yaratish
func (g *geminiClient) GenerateReply(ctx context.Context, userID int64, message string, history []entity.Message) (string, error) {
	release := g.acquire()
	defer release()

	// Chat history ni tayyorlash
	var parts []genai.Part
	for _, msg := range history {
		if msg.Text != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Khách: %s", msg.Text)))
		}
		if msg.Response != "" {
			parts = append(parts, genai.Text(fmt.Sprintf("Shop: %s", msg.Response)))
		}
	}

	parts = append(parts, genai.Text(message))

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	return extractText(resp), nil
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				result.WriteString(fmt.Sprintf("%v", part))
			}
		}
	}
	return result.String()
}

func (g *geminiClient) acquire() func() {
	g.sem <- struct{}{}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	} else {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
		g.last = now
	}

	return func() {
		<-g.sem
	}
}

// Close client ni yopish
func (g *geminiClient) Close() error {
	return g.client.Close()
}
