package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/jeancarlo3213/ferrefactura-backend/internal/application/dto"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/entity"
	"github.com/jeancarlo3213/ferrefactura-backend/internal/domain/repository"
)

// EncodingCP850 página de códigos de las impresoras ESC/POS del mostrador.
const EncodingCP850 = "cp850"

// PrintUseCase cola de impresión: el agente local consulta los pendientes y los marca como impresos.
type PrintUseCase struct {
	repo repository.PrintJobRepository
}

func NewPrintUseCase(repo repository.PrintJobRepository) *PrintUseCase {
	return &PrintUseCase{repo: repo}
}

func (uc *PrintUseCase) AddJob(ctx context.Context, in dto.PrintJobRequest) (*dto.PrintJobResponse, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.NewValidationError("text", "es obligatorio")
	}
	job := &entity.PrintJob{Text: in.Text}
	if err := uc.repo.Create(ctx, job); err != nil {
		return nil, err
	}
	return toPrintJobResponse(job), nil
}

// ListPending trabajos sin imprimir, del más antiguo al más reciente. Con encoding "cp850"
// cada trabajo lleva además el texto codificado en base64 listo para la impresora.
func (uc *PrintUseCase) ListPending(ctx context.Context, encoding string) ([]dto.PrintJobResponse, error) {
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if encoding != "" && encoding != EncodingCP850 {
		return nil, domain.NewValidationError("encoding", "solo se admite cp850")
	}
	jobs, err := uc.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PrintJobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp := toPrintJobResponse(j)
		if encoding == EncodingCP850 {
			payload, err := EncodeCP850(j.Text)
			if err != nil {
				return nil, fmt.Errorf("trabajo %d: %w", j.ID, err)
			}
			resp.Payload = base64.StdEncoding.EncodeToString(payload)
			resp.Encoding = EncodingCP850
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (uc *PrintUseCase) MarkPrinted(ctx context.Context, id int64) error {
	return uc.repo.MarkPrinted(ctx, id)
}

// EncodeCP850 convierte el texto a CP850; los caracteres sin equivalente se reemplazan por '?'.
func EncodeCP850(text string) ([]byte, error) {
	var b strings.Builder
	for _, r := range text {
		if _, ok := charmap.CodePage850.EncodeRune(r); ok {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return charmap.CodePage850.NewEncoder().Bytes([]byte(b.String()))
}

func toPrintJobResponse(j *entity.PrintJob) *dto.PrintJobResponse {
	return &dto.PrintJobResponse{ID: j.ID, Text: j.Text, Printed: j.Printed, CreatedAt: j.CreatedAt}
}
