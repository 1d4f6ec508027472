package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/solacehealth/solace/internal/respond"
	"github.com/solacehealth/solace/internal/safety"
	"github.com/solacehealth/solace/internal/session"
	"github.com/solacehealth/solace/internal/speech"
)

// Orchestrator runs the safety-gated processing sequence. Classification
// always runs before generation and is never reordered or parallelized with
// it; a high-risk assessment short-circuits to the fixed calming message and
// the generator is never invoked. Session state committed before a later
// stage failure (the entry touch) stays applied.
type Orchestrator struct {
	sessions    *session.Service
	classifier  safety.Classifier
	generator   respond.Generator
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer

	stageTimeout time.Duration
	logger       *zap.Logger
}

// NewOrchestrator creates a pipeline orchestrator
func NewOrchestrator(
	sessions *session.Service,
	classifier safety.Classifier,
	generator respond.Generator,
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	stageTimeout time.Duration,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		sessions:     sessions,
		classifier:   classifier,
		generator:    generator,
		transcriber:  transcriber,
		synthesizer:  synthesizer,
		stageTimeout: stageTimeout,
		logger:       logger,
	}
}

// ProcessText runs the pipeline for a text-origin request
func (o *Orchestrator) ProcessText(ctx context.Context, req TextRequest) (*Result, error) {
	if _, err := o.sessions.Resolve(req.SessionID, req.CallerUserID); err != nil {
		return nil, err
	}

	result := &Result{State: StateReceived}
	if err := o.respond(ctx, req.CallerUserID, req.Message, result); err != nil {
		result.State = StateFailed
		return nil, err
	}

	result.State = StateDone
	return result, nil
}

// ProcessVoice runs the pipeline for a voice-origin request, transcribing the
// audio first and synthesizing the chosen reply at the end
func (o *Orchestrator) ProcessVoice(ctx context.Context, req VoiceRequest) (*Result, error) {
	if _, err := o.sessions.Resolve(req.SessionID, req.CallerUserID); err != nil {
		return nil, err
	}

	result := &Result{State: StateReceived}

	text, err := o.transcribe(ctx, req.Audio)
	if err != nil {
		result.State = StateFailed
		return nil, err
	}

	o.logger.Info("Transcription completed",
		zap.String("user_id", req.CallerUserID),
		zap.Int("text_length", len(text)))

	if err := o.respond(ctx, req.CallerUserID, text, result); err != nil {
		result.State = StateFailed
		return nil, err
	}

	result.State = StateSynthesizing
	audio, err := o.synthesize(ctx, result.Text)
	if err != nil {
		result.State = StateFailed
		return nil, err
	}
	result.Audio = audio

	result.State = StateDone
	return result, nil
}

// respond classifies the text and fills in the reply, gated or generated
func (o *Orchestrator) respond(ctx context.Context, userID, text string, result *Result) error {
	result.Assessment = o.classifier.Analyze(text)
	result.State = StateClassified

	o.logger.Info("Safety analysis completed",
		zap.String("user_id", userID),
		zap.String("risk_tier", string(result.Assessment.Tier)))

	if result.Assessment.Tier == safety.TierHigh {
		result.State = StateGated
		result.Gated = true
		result.Text = CalmingMessage
		return nil
	}

	result.State = StateGenerating
	reply, err := o.generate(ctx, text, result.Assessment.Tier)
	if err != nil {
		return err
	}
	result.Text = reply

	o.logger.Info("Response generated",
		zap.String("user_id", userID),
		zap.String("risk_tier", string(result.Assessment.Tier)))
	return nil
}

func (o *Orchestrator) transcribe(ctx context.Context, audio []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	text, err := o.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", NewStageError(StageTranscription, err)
	}
	return text, nil
}

func (o *Orchestrator) generate(ctx context.Context, text string, tier safety.RiskTier) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	reply, err := o.generator.Generate(ctx, text, tier)
	if err != nil {
		return "", NewStageError(StageGeneration, err)
	}
	return reply, nil
}

func (o *Orchestrator) synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	audio, err := o.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return nil, NewStageError(StageSynthesis, err)
	}
	return audio, nil
}
