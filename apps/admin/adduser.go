package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/Fukuzeya/zim-student-companion-sub000/core"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByUsername(uname)
	if err == user.ErrNotFound {
		usr, err = cli.usrRepo.GetUserByEmail(email)
	}
	exists := true
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		exists = false
		now := time.Now().UTC()
		usr = user.User{
			ID:        uuid.New().String(),
			Username:  uname,
			Email:     email,
			Tier:      user.TierFree,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	if isAdmin {
		usr.Roles = user.AllRoles
	}
	active := true
	usr.IsActive = &active
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if exists {
		_, err = cli.usrRepo.UpdateUser(usr, &active)
	} else {
		_, err = cli.usrRepo.CreateUser(usr)
	}
	return err
}
