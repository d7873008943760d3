package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/voice-minutes/internal/config"
	"github.com/nguyentantai21042004/voice-minutes/internal/document"
	"github.com/nguyentantai21042004/voice-minutes/internal/notify"
	"github.com/nguyentantai21042004/voice-minutes/internal/summarizer"
)

const (
	msgRemoteFailed  = "AI通信でエラーが発生しました"
	msgEmptySummary  = "AIから議事録が返りませんでした"
	msgRenderFailedF = "%s生成でエラーが発生しました"
	msgSavedF        = "%s保存完了: %s"
)

func (p *implProcessor) Process(ctx context.Context, req Request) (document.Result, error) {
	if isBlank(req.Text) {
		return document.Result{}, ErrEmptyText
	}
	if !p.slot.try() {
		return document.Result{}, ErrBusy
	}
	defer p.slot.release()

	return p.generate(ctx, req)
}

func (p *implProcessor) Submit(ctx context.Context, req Request) error {
	if isBlank(req.Text) {
		return ErrEmptyText
	}
	if !p.slot.try() {
		return ErrBusy
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.slot.release()

		// Failures were already logged and notified; Wait reports them.
		if _, err := p.generate(ctx, req); err != nil {
			p.mu.Lock()
			p.submitErr = err
			p.mu.Unlock()
		}
	}()
	return nil
}

func (p *implProcessor) Processing() bool {
	return p.slot.inUse()
}

func (p *implProcessor) Wait() error {
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.submitErr
	p.submitErr = nil
	return err
}

// generate orchestrates summary and document rendering. Any failure is
// reported once to the user and aborts the pipeline.
func (p *implProcessor) generate(ctx context.Context, req Request) (document.Result, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Generating minutes (%d chars, date %q)", len(req.Text), req.StartDate)
	p.logger.Info(ctx, "========================================")

	// Step 1: Summarize
	summary, err := p.summarizer.Summarize(ctx, req.Text, req.StartDate)
	if err != nil {
		p.logger.Error(ctx, "Summary generation failed: %v", err)
		p.notifier.Notify(ctx, notify.Error(summaryFailureMessage(err)))
		return document.Result{}, fmt.Errorf("summarize: %w", err)
	}

	// Step 2: Render and save
	res, err := p.renderer.Render(ctx, summary)
	if err != nil {
		p.logger.Error(ctx, "Document generation failed: %v", err)
		p.notifier.Notify(ctx, notify.Error(fmt.Sprintf(msgRenderFailedF, p.formatLabel())))
		return document.Result{}, fmt.Errorf("render: %w", err)
	}

	p.notifier.Notify(ctx, notify.Success(fmt.Sprintf(msgSavedF, p.formatLabel(), filepath.Base(res.Path))))

	p.logger.Info(ctx, "Minutes completed in %s: %s (%d pages)", time.Since(startTime), res.Path, res.Pages)
	return res, nil
}

func summaryFailureMessage(err error) string {
	if errors.Is(err, summarizer.ErrEmptyCompletion) {
		return msgEmptySummary
	}
	return msgRemoteFailed
}

func (p *implProcessor) formatLabel() string {
	if p.cfg != nil && p.cfg.Document.Format == config.FormatDOCX {
		return "Word"
	}
	return "PDF"
}
