package app

import (
	"fmt"

	authService "github.com/allisson/serviceauth/internal/auth/service"
	authUsecase "github.com/allisson/serviceauth/internal/auth/usecase"
	serviceRepository "github.com/allisson/serviceauth/internal/service/repository"
	serviceUsecase "github.com/allisson/serviceauth/internal/service/usecase"
	userRepository "github.com/allisson/serviceauth/internal/user/repository"
	userUsecase "github.com/allisson/serviceauth/internal/user/usecase"
)

// SecretService returns the secret hashing service.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// SessionTokenService returns the session token service.
func (c *Container) SessionTokenService() (authService.SessionTokenService, error) {
	c.sessionTokenServiceInit.Do(func() {
		service, err := authService.NewSessionTokenService(
			c.config.SessionTokenSecret,
			c.config.SessionTokenExpiration,
		)
		if err != nil {
			c.initErrors["sessionTokenService"] = fmt.Errorf("failed to create session token service: %w", err)
			return
		}
		c.sessionTokenService = service
	})
	if storedErr, exists := c.initErrors["sessionTokenService"]; exists {
		return nil, storedErr
	}
	return c.sessionTokenService, nil
}

// ServiceRepository returns the service repository instance.
func (c *Container) ServiceRepository() (serviceUsecase.ServiceRepository, error) {
	c.serviceRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["serviceRepo"] = fmt.Errorf("failed to get database for service repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.serviceRepo = serviceRepository.NewMySQLServiceRepository(db)
		case "postgres":
			c.serviceRepo = serviceRepository.NewPostgreSQLServiceRepository(db)
		default:
			c.initErrors["serviceRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["serviceRepo"]; exists {
		return nil, storedErr
	}
	return c.serviceRepo, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = userRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.userRepo = userRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// ServiceUseCase returns the service use case instance, instrumented with
// business metrics when metrics are enabled.
func (c *Container) ServiceUseCase() (serviceUsecase.ServiceUseCase, error) {
	c.serviceUseCaseInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["serviceUseCase"] = fmt.Errorf("failed to get tx manager for service use case: %w", err)
			return
		}

		serviceRepo, err := c.ServiceRepository()
		if err != nil {
			c.initErrors["serviceUseCase"] = fmt.Errorf("failed to get service repository for service use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["serviceUseCase"] = fmt.Errorf("failed to get business metrics for service use case: %w", err)
			return
		}

		useCase := serviceUsecase.NewServiceUseCase(
			txManager,
			serviceRepo,
			c.SecretService(),
			c.config.AdminServiceName,
		)
		c.serviceUseCase = serviceUsecase.NewServiceUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["serviceUseCase"]; exists {
		return nil, storedErr
	}
	return c.serviceUseCase, nil
}

// VerifyUseCase returns the verify use case instance, instrumented with
// business metrics when metrics are enabled.
func (c *Container) VerifyUseCase() (authUsecase.VerifyUseCase, error) {
	c.verifyUseCaseInit.Do(func() {
		serviceUseCase, err := c.ServiceUseCase()
		if err != nil {
			c.initErrors["verifyUseCase"] = fmt.Errorf("failed to get service use case for verify use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["verifyUseCase"] = fmt.Errorf("failed to get business metrics for verify use case: %w", err)
			return
		}

		useCase := authUsecase.NewVerifyUseCase(serviceUseCase)
		c.verifyUseCase = authUsecase.NewVerifyUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["verifyUseCase"]; exists {
		return nil, storedErr
	}
	return c.verifyUseCase, nil
}

// SignInUseCase returns the sign-in use case instance, instrumented with
// business metrics when metrics are enabled.
func (c *Container) SignInUseCase() (authUsecase.SignInUseCase, error) {
	c.signInUseCaseInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["signInUseCase"] = fmt.Errorf("failed to get user repository for sign-in use case: %w", err)
			return
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["signInUseCase"] = fmt.Errorf("failed to get business metrics for sign-in use case: %w", err)
			return
		}

		sessionTokenService, err := c.SessionTokenService()
		if err != nil {
			c.initErrors["signInUseCase"] = fmt.Errorf("failed to get session token service for sign-in use case: %w", err)
			return
		}

		useCase := authUsecase.NewSignInUseCase(userRepo, c.SecretService(), sessionTokenService)
		c.signInUseCase = authUsecase.NewSignInUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["signInUseCase"]; exists {
		return nil, storedErr
	}
	return c.signInUseCase, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get user repository for user use case: %w", err)
			return
		}

		useCase, err := userUsecase.NewUserUseCase(userRepo)
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to create user use case: %w", err)
			return
		}
		c.userUseCase = useCase
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}
