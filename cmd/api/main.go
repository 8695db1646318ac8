package main

import (
	"fmt"
	"net/http"

	"github.com/banrai-ops/farm-backend-go/internal/config"
	appHTTP "github.com/banrai-ops/farm-backend-go/internal/handler/http"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/cron"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/database"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/jwt"
	"github.com/banrai-ops/farm-backend-go/internal/repository/postgresql"
	authService "github.com/banrai-ops/farm-backend-go/internal/service/auth"
	employeeService "github.com/banrai-ops/farm-backend-go/internal/service/employee"
	expenseService "github.com/banrai-ops/farm-backend-go/internal/service/expense"
	payrollService "github.com/banrai-ops/farm-backend-go/internal/service/payroll"
	taskService "github.com/banrai-ops/farm-backend-go/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(userRepo)
	taskSvc := taskService.NewTaskService(db, taskRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, userRepo, expenseRepo)
	expenseSvc := expenseService.NewExpenseService(expenseRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	expenseHandler := appHTTP.NewExpenseHandler(expenseSvc)

	scheduler := cron.NewScheduler()
	cron.NewTaskJobs(taskRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		employeeHandler,
		taskHandler,
		payrollHandler,
		expenseHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
