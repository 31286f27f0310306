package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	reviewRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/review"
	"github.com/m04kA/SMC-SoundInkube/internal/service/reviews/models"
)

// Service сервис отзывов. После каждого изменения рейтинг сущности пересчитывается целиком
type Service struct {
	reviewRepo ReviewRepository
	targetRepo TargetRepository
	txManager  TransactionManager
	events     EventPublisher
	metrics    Metrics
	logger     Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	targetRepo TargetRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		targetRepo: targetRepo,
		txManager:  txManager,
		events:     publisher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create создает отзыв о сущности, с которой у автора было завершенное взаимодействие
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: review by user=%d rating=%d", actor.UserID, req.Rating)

	// 1. Ровно одна цель
	target, err := domain.ReviewTargetFromIDs(req.StudioID, req.JamPadID, req.SchoolID, req.ListingID)
	if err != nil {
		s.logger.Warn("Create: invalid target: %v", err)
		return nil, ErrInvalidTarget
	}

	// 2. Рейтинг и комментарий
	if err := validateContent(req.Rating, req.Comment); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	var (
		created *domain.Review
		summary domain.RatingSummary
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Сущность существует, блокируем её до пересчета рейтинга
		exists, err := s.lockTarget(txCtx, target, "Create")
		if err != nil {
			return err
		}
		if !exists {
			s.logger.Warn("Create: target %s id=%d not found", target.Kind, target.ID)
			return ErrTargetNotFound
		}

		// 3.2. Автор пользовался сущностью
		count, err := s.targetRepo.CountCompletedInteractions(txCtx, actor.UserID, target)
		if err != nil {
			s.logger.Error("Create: failed to count interactions for user=%d: %v", actor.UserID, err)
			return fmt.Errorf("%w: Create - interactions: %w", ErrInternal, err)
		}
		if count == 0 {
			s.logger.Warn("Create: user=%d has no completed interaction with %s id=%d", actor.UserID, target.Kind, target.ID)
			return ErrNoCompletedInteraction
		}

		// 3.3. Один отзыв на автора и сущность
		duplicate, err := s.reviewRepo.ExistsByAuthorAndTarget(txCtx, actor.UserID, target)
		if err != nil {
			s.logger.Error("Create: failed to check duplicate for user=%d: %v", actor.UserID, err)
			return fmt.Errorf("%w: Create - duplicate check: %w", ErrInternal, err)
		}
		if duplicate {
			s.logger.Warn("Create: user=%d already reviewed %s id=%d", actor.UserID, target.Kind, target.ID)
			return ErrDuplicateReview
		}

		// 3.4. Сохраняем
		created, err = s.reviewRepo.Create(txCtx, &domain.Review{
			AuthorID: actor.UserID,
			Target:   target,
			Rating:   req.Rating,
			Comment:  req.Comment,
		})
		if err != nil {
			if errors.Is(err, reviewRepo.ErrDuplicateReview) {
				return ErrDuplicateReview
			}
			s.logger.Error("Create: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}

		// 3.5. Полный пересчет рейтинга
		summary, err = s.aggregate(txCtx, target)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterAggregate(ctx, target, summary)
	s.logger.Info("Create: successfully created review id=%d", created.ID)
	return models.FromDomainReview(created), nil
}

// Update меняет отзыв (автор или администратор). Рейтинг сущности пересчитывается, если изменилась оценка
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Update: review id=%d by user=%d", id, actor.UserID)

	var (
		review  *domain.Review
		summary domain.RatingSummary
		rerated bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		review, err = s.getReview(txCtx, id, "Update")
		if err != nil {
			return err
		}

		if !domain.Authorize(actor, review).Write {
			s.logger.Warn("Update: access denied for user=%d to review id=%d", actor.UserID, id)
			return ErrAccessDenied
		}

		rating, comment := review.Rating, review.Comment
		if req.Rating != nil {
			rating = *req.Rating
		}
		if req.Comment != nil {
			comment = *req.Comment
		}
		if err := validateContent(rating, comment); err != nil {
			s.logger.Warn("Update: %v", err)
			return err
		}

		rerated = rating != review.Rating
		if rerated {
			if err := s.lockExistingTarget(txCtx, review, "Update"); err != nil {
				return err
			}
		}
		review.Rating = rating
		review.Comment = comment

		if err := s.reviewRepo.Update(txCtx, review); err != nil {
			if errors.Is(err, reviewRepo.ErrReviewNotFound) {
				return ErrReviewNotFound
			}
			s.logger.Error("Update: repository error for review id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		if rerated {
			summary, err = s.aggregate(txCtx, review.Target)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rerated {
		s.afterAggregate(ctx, review.Target, summary)
	}
	return models.FromDomainReview(review), nil
}

// Delete удаляет отзыв (автор или администратор) и пересчитывает рейтинг
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: review id=%d by user=%d", id, actor.UserID)

	var (
		target  domain.ReviewTarget
		summary domain.RatingSummary
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		review, err := s.getReview(txCtx, id, "Delete")
		if err != nil {
			return err
		}

		if !domain.Authorize(actor, review).Write {
			s.logger.Warn("Delete: access denied for user=%d to review id=%d", actor.UserID, id)
			return ErrAccessDenied
		}

		if err := s.lockExistingTarget(txCtx, review, "Delete"); err != nil {
			return err
		}

		if err := s.reviewRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reviewRepo.ErrReviewNotFound) {
				return ErrReviewNotFound
			}
			s.logger.Error("Delete: repository error for review id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		target = review.Target
		summary, err = s.aggregate(txCtx, target)
		return err
	})
	if err != nil {
		return err
	}

	s.afterAggregate(ctx, target, summary)
	return nil
}

// GetByID возвращает отзыв. Отзывы публичные
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReviewResponse, error) {
	review, err := s.getReview(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainReview(review), nil
}

// ListByTarget отзывы о сущности вместе с текущим агрегатом
func (s *Service) ListByTarget(ctx context.Context, target domain.ReviewTarget, page domain.Page) (*models.ReviewListResponse, error) {
	page = page.Normalize()

	if !target.Kind.IsValid() || target.ID <= 0 {
		return nil, ErrInvalidTarget
	}

	reviews, err := s.reviewRepo.ListByTarget(ctx, target, page)
	if err != nil {
		s.logger.Error("ListByTarget: repository error for %s id=%d: %v", target.Kind, target.ID, err)
		return nil, fmt.Errorf("%w: ListByTarget - repository error: %w", ErrInternal, err)
	}

	summary, err := s.reviewRepo.Summary(ctx, target)
	if err != nil {
		s.logger.Error("ListByTarget: summary error for %s id=%d: %v", target.Kind, target.ID, err)
		return nil, fmt.Errorf("%w: ListByTarget - summary: %w", ErrInternal, err)
	}

	return models.FromDomainReviewList(reviews, summary, page), nil
}

func (s *Service) lockTarget(ctx context.Context, target domain.ReviewTarget, op string) (bool, error) {
	exists, err := s.targetRepo.LockReviewTarget(ctx, target)
	if err != nil {
		s.logger.Error("%s: failed to lock target %s id=%d: %v", op, target.Kind, target.ID, err)
		return false, fmt.Errorf("%w: %s - lock target: %w", ErrInternal, op, err)
	}
	return exists, nil
}

// lockExistingTarget блокирует сущность отзыва. Отзывы удаляются вместе с сущностью,
// поэтому отсутствие сущности означает, что отзыва уже нет
func (s *Service) lockExistingTarget(ctx context.Context, review *domain.Review, op string) error {
	exists, err := s.lockTarget(ctx, review.Target, op)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Warn("%s: target %s id=%d of review id=%d is gone", op, review.Target.Kind, review.Target.ID, review.ID)
		return ErrReviewNotFound
	}
	return nil
}

// aggregate пересчитывает {avg(rating), count(*)} по всем отзывам сущности и сохраняет его в сущность
func (s *Service) aggregate(ctx context.Context, target domain.ReviewTarget) (domain.RatingSummary, error) {
	summary, err := s.reviewRepo.Summary(ctx, target)
	if err != nil {
		s.logger.Error("aggregate: summary error for %s id=%d: %v", target.Kind, target.ID, err)
		return domain.RatingSummary{}, fmt.Errorf("%w: aggregate - summary: %w", ErrInternal, err)
	}

	if err := s.targetRepo.UpdateRating(ctx, target, summary); err != nil {
		s.logger.Error("aggregate: failed to update rating of %s id=%d: %v", target.Kind, target.ID, err)
		return domain.RatingSummary{}, fmt.Errorf("%w: aggregate - update rating: %w", ErrInternal, err)
	}

	return summary, nil
}

func (s *Service) afterAggregate(ctx context.Context, target domain.ReviewTarget, summary domain.RatingSummary) {
	s.metrics.IncEvent("review_aggregated")
	if err := s.events.Publish(ctx, events.ReviewAggregated(target, summary)); err != nil {
		s.logger.Warn("aggregate: failed to publish event for %s id=%d: %v", target.Kind, target.ID, err)
	}
	s.logger.Info("aggregate: %s id=%d average=%.2f total=%d", target.Kind, target.ID, summary.Average, summary.Count)
}

func (s *Service) getReview(ctx context.Context, id int64, op string) (*domain.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("%s: review id=%d not found", op, id)
			return nil, ErrReviewNotFound
		}
		s.logger.Error("%s: repository error for review id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return review, nil
}

func validateContent(rating int, comment string) error {
	if !domain.ValidRating(rating) {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if !domain.ValidComment(comment) {
		return fmt.Errorf("%w: comment must be %d to %d characters", ErrInvalidInput, domain.MinReviewCommentLen, domain.MaxReviewCommentLen)
	}
	return nil
}
