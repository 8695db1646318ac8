package task

import "context"

type TaskService interface {
	Create(ctx context.Context, req CreateTaskRequest, createdBy int64) (Task, error)
	Get(ctx context.Context, id int64) (Task, error)
	List(ctx context.Context, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (Task, error)
	Delete(ctx context.Context, id int64) error

	CreatePayment(ctx context.Context, req CreatePaymentRequest) (PaymentEntry, error)
	ListPayments(ctx context.Context, taskID int64) ([]PaymentEntry, error)
	DeletePayment(ctx context.Context, taskID, paymentID int64) error
}
