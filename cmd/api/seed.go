package main

import (
	"context"
	"errors"
	"log"

	"go-creamery-pos/internal/config"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"
)

// seedAccess creates default privileges, roles and the owner account if they don't exist
func seedAccess(ctx context.Context, cfg *config.Config, userRepo repository.UserRepository, privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository) {
	if err := privilegeRepo.SeedDefaults(ctx); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}
	if err := roleRepo.SeedDefaults(ctx); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	allPrivileges, err := privilegeRepo.FindAll(ctx)
	if err != nil {
		log.Printf("Warning: Failed to load privileges: %v", err)
		return
	}

	// Roles that already carry privileges were edited by the owner; leave them alone
	for _, r := range model.DefaultRoles {
		role, err := roleRepo.FindByCode(ctx, r.Code)
		if err != nil || len(role.Privileges) > 0 {
			continue
		}
		if err := roleRepo.ReplacePrivileges(ctx, role, model.SeedPrivilegesFor(role.Code, allPrivileges)); err != nil {
			log.Printf("Warning: Failed to grant privileges to %s: %v", role.Code, err)
			continue
		}
		log.Printf("✅ %s role assigned default privileges", role.Code)
	}

	_, err = userRepo.FindByEmail(ctx, cfg.SeedAdminEmail)
	if err == nil {
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Warning: Failed to look up owner account: %v", err)
		return
	}

	ownerRole, err := roleRepo.FindByCode(ctx, model.RoleOwner)
	if err != nil {
		log.Printf("Warning: OWNER role missing: %v", err)
		return
	}

	owner := &model.User{
		Email:      cfg.SeedAdminEmail,
		FullName:   "Shop Owner",
		RoleID:     &ownerRole.ID,
		IsActive:   true,
		Privileges: ownerRole.Privileges,
	}
	owner.Stamp("system")

	if err := owner.SetPassword(cfg.SeedAdminPassword); err != nil {
		log.Printf("Warning: Failed to hash owner password: %v", err)
		return
	}
	if err := userRepo.Create(ctx, owner); err != nil {
		log.Printf("Warning: Failed to create owner account: %v", err)
		return
	}
	log.Printf("✅ Owner account created: %s (OWNER)", cfg.SeedAdminEmail)
}
