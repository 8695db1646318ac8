package task

import (
	"context"
	"time"

	"github.com/banrai-ops/farm-backend-go/internal/domain/task"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/database"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/validator"
	"github.com/banrai-ops/farm-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type TaskServiceImpl struct {
	db       *database.DB
	taskRepo task.TaskRepository
}

func NewTaskService(db *database.DB, taskRepo task.TaskRepository) task.TaskService {
	return &TaskServiceImpl{
		db:       db,
		taskRepo: taskRepo,
	}
}

func (s *TaskServiceImpl) Create(ctx context.Context, req task.CreateTaskRequest, createdBy int64) (task.Task, error) {
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	var endDate *time.Time
	if req.EndDate != nil {
		d, _ := validator.IsValidDate(*req.EndDate)
		endDate = &d
	}

	status := task.StatusPending
	if req.Status != nil {
		status = task.Status(*req.Status)
	}

	t := task.Task{
		Title:       req.Title,
		JobType:     task.JobType(req.JobType),
		StartDate:   startDate,
		EndDate:     endDate,
		Area:        req.Area,
		Trucks:      req.Trucks,
		TotalAmount: req.TotalAmount,
		PaidAmount:  req.PaidAmount,
		Note:        req.Note,
		Status:      status,
		CreatedBy:   createdBy,
	}

	var taskID int64
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		created, err := s.taskRepo.Create(ctx, tx, t)
		if err != nil {
			return err
		}
		if len(req.Assignees) > 0 {
			if err := s.taskRepo.UpsertAssigneesTx(ctx, tx, created.ID, req.Assignees); err != nil {
				return err
			}
		}
		taskID = created.ID
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}

	return s.taskRepo.GetByID(ctx, taskID)
}

func (s *TaskServiceImpl) Get(ctx context.Context, id int64) (task.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

func (s *TaskServiceImpl) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	var errs validator.ValidationErrors
	if filter.From != nil {
		if _, ok := validator.IsValidDate(*filter.From); !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be YYYY-MM-DD"})
		}
	}
	if filter.To != nil {
		if _, ok := validator.IsValidDate(*filter.To); !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be YYYY-MM-DD"})
		}
	}
	for _, st := range filter.Statuses {
		if !validator.IsInSlice(st, []string{
			string(task.StatusPending), string(task.StatusInProgress), string(task.StatusDone),
		}) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of Pending, InProgress, Done"})
			break
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return s.taskRepo.List(ctx, filter)
}

func (s *TaskServiceImpl) Update(ctx context.Context, req task.UpdateTaskRequest) (task.Task, error) {
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := s.taskRepo.Update(ctx, tx, req); err != nil {
			return err
		}
		// A present assignees field replaces the whole set; absent leaves
		// the current assignments alone.
		if req.Assignees != nil {
			if err := s.taskRepo.ReplaceAssigneesTx(ctx, tx, req.ID, *req.Assignees); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}

	return s.taskRepo.GetByID(ctx, req.ID)
}

func (s *TaskServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return s.taskRepo.DeleteTx(ctx, tx, id)
	})
}

func (s *TaskServiceImpl) CreatePayment(ctx context.Context, req task.CreatePaymentRequest) (task.PaymentEntry, error) {
	if err := req.Validate(); err != nil {
		return task.PaymentEntry{}, err
	}

	if _, err := s.taskRepo.GetByID(ctx, req.TaskID); err != nil {
		return task.PaymentEntry{}, err
	}

	var entry task.PaymentEntry
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		created, err := s.taskRepo.CreatePaymentTx(ctx, tx, task.PaymentEntry{
			TaskID: req.TaskID,
			Amount: req.Amount,
			Note:   req.Note,
		})
		if err != nil {
			return err
		}
		if err := s.taskRepo.AdjustPaidAmountTx(ctx, tx, req.TaskID, req.Amount); err != nil {
			return err
		}
		entry = created
		return nil
	})
	if err != nil {
		return task.PaymentEntry{}, err
	}

	return entry, nil
}

func (s *TaskServiceImpl) ListPayments(ctx context.Context, taskID int64) ([]task.PaymentEntry, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListPayments(ctx, taskID)
}

// DeletePayment removes a payment entry and backs its amount out of the
// task's paid total.
func (s *TaskServiceImpl) DeletePayment(ctx context.Context, taskID, paymentID int64) error {
	entry, err := s.taskRepo.GetPayment(ctx, taskID, paymentID)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.taskRepo.DeletePaymentTx(ctx, tx, paymentID); err != nil {
			return err
		}
		return s.taskRepo.AdjustPaidAmountTx(ctx, tx, taskID, -entry.Amount)
	})
}
