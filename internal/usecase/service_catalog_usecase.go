package usecase

import (
	"context"

	"clinic-scheduling/internal/converter"
	"clinic-scheduling/internal/delivery/dto"
	"clinic-scheduling/internal/delivery/http/middleware"
	"clinic-scheduling/internal/domain/entity"
	"clinic-scheduling/internal/domain/repository"
	"clinic-scheduling/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ServiceCatalogUsecase manages the bookable service catalog. The scheduling
// engine only reads DurationMinutes from here.
type ServiceCatalogUsecase interface {
	CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetService(ctx context.Context, serviceID uuid.UUID) (*dto.ServiceResponse, error)
	GetAllServices(ctx context.Context) (*dto.ServiceListResponse, error)
	UpdateService(ctx context.Context, serviceID uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(ctx context.Context, serviceID uuid.UUID) error
}

type serviceCatalogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewServiceCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) ServiceCatalogUsecase {
	return &serviceCatalogUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceCatalogUsecase) CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, err
	}

	active := true
	svc := &entity.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           price,
		IsActive:        &active,
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	if err := u.serviceRepo.Create(u.db.WithContext(ctx), svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionServiceCreate, "service", svc.ID.String(), converter.ServiceToResponse(svc)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceCatalogUsecase) GetService(ctx context.Context, serviceID uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceCatalogUsecase) GetAllServices(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceCatalogUsecase) UpdateService(ctx context.Context, serviceID uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			return nil, err
		}
		svc.Price = price
	}
	if req.IsActive != nil {
		svc.IsActive = req.IsActive
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	if err := u.serviceRepo.Update(u.db.WithContext(ctx), svc); err != nil {
		u.log.Warnf("Failed to update service %s: %+v", serviceID, err)
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionServiceUpdate, "service", svc.ID.String(), nil, converter.ServiceToResponse(svc)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceCatalogUsecase) DeleteService(ctx context.Context, serviceID uuid.UUID) error {
	affected, err := u.serviceRepo.Delete(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to delete service %s: %+v", serviceID, err)
		return err
	}
	if affected == 0 {
		return ErrServiceNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, u.db.WithContext(ctx), &userID, entity.AuditActionServiceDelete, "service", serviceID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}
