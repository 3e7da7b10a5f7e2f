package auth

import (
	"net/http"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/shiftwise/planning-api/internal"
)

func ptrInt64(v int64) *int64 { return &v }

var _ = ginkgo.Describe("AccessPolicy", func() {
	var (
		admin           *Actor
		managerEstOne   *Actor
		managerEstTwo   *Actor
		employeeEstOne  *Actor
		unassignedActor *Actor
	)

	ginkgo.BeforeEach(func() {
		admin = &Actor{ID: 1, Role: RoleAdmin}
		managerEstOne = &Actor{ID: 2, Role: RoleManager, EstablishmentID: ptrInt64(1)}
		managerEstTwo = &Actor{ID: 3, Role: RoleManager, EstablishmentID: ptrInt64(2)}
		employeeEstOne = &Actor{ID: 4, Role: RoleEmployee, EstablishmentID: ptrInt64(1)}
		unassignedActor = &Actor{ID: 5, Role: RoleManager, EstablishmentID: nil}
	})

	ginkgo.Describe("CanReadProfile", func() {
		ginkgo.It("should let admins read anyone", func() {
			target := ProfileRef{ID: 99, Role: RoleEmployee, EstablishmentID: ptrInt64(7)}
			gomega.Expect(CanReadProfile(admin, target).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should let anyone read their own profile", func() {
			target := ProfileRef{ID: 4, Role: RoleEmployee, EstablishmentID: ptrInt64(1)}
			gomega.Expect(CanReadProfile(employeeEstOne, target).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should let managers read members of their establishment", func() {
			target := ProfileRef{ID: 4, Role: RoleEmployee, EstablishmentID: ptrInt64(1)}
			gomega.Expect(CanReadProfile(managerEstOne, target).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should deny managers reading another establishment", func() {
			target := ProfileRef{ID: 4, Role: RoleEmployee, EstablishmentID: ptrInt64(1)}
			decision := CanReadProfile(managerEstTwo, target)
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonSelfOrManagerOnly))
		})

		ginkgo.It("should deny employees reading other profiles", func() {
			target := ProfileRef{ID: 6, Role: RoleEmployee, EstablishmentID: ptrInt64(1)}
			gomega.Expect(CanReadProfile(employeeEstOne, target).Allowed).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CanUpdateProfile", func() {
		ginkgo.It("should deny employees updating anything, their own record included", func() {
			self := ProfileRef{ID: 4, Role: RoleEmployee, EstablishmentID: ptrInt64(1)}
			decision := CanUpdateProfile(employeeEstOne, self)
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonEmployeesCannotUpdate))
		})

		ginkgo.It("should let managers update employees of their establishment", func() {
			target := ProfileRef{ID: 4, Role: RoleEmployee, EstablishmentID: ptrInt64(1)}
			gomega.Expect(CanUpdateProfile(managerEstOne, target).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should let managers update their own record", func() {
			self := ProfileRef{ID: 2, Role: RoleManager, EstablishmentID: ptrInt64(1)}
			gomega.Expect(CanUpdateProfile(managerEstOne, self).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should deny managers updating a peer manager", func() {
			peer := ProfileRef{ID: 8, Role: RoleManager, EstablishmentID: ptrInt64(1)}
			decision := CanUpdateProfile(managerEstOne, peer)
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonCannotModifySuperior))
		})

		ginkgo.It("should deny managers updating an admin in their establishment", func() {
			superior := ProfileRef{ID: 9, Role: RoleAdmin, EstablishmentID: ptrInt64(1)}
			decision := CanUpdateProfile(managerEstOne, superior)
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonCannotModifySuperior))
		})

		ginkgo.It("should deny managers updating across establishments", func() {
			target := ProfileRef{ID: 4, Role: RoleEmployee, EstablishmentID: ptrInt64(1)}
			decision := CanUpdateProfile(managerEstTwo, target)
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonNotYourEstablishment))
		})

		ginkgo.It("should let admins update anyone", func() {
			target := ProfileRef{ID: 8, Role: RoleManager, EstablishmentID: ptrInt64(2)}
			gomega.Expect(CanUpdateProfile(admin, target).Allowed).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("CanInvite", func() {
		ginkgo.It("should let admins invite into any establishment", func() {
			gomega.Expect(CanInvite(admin, ptrInt64(7)).Allowed).To(gomega.BeTrue())
			gomega.Expect(CanInvite(admin, nil).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should let managers invite into their own establishment only", func() {
			gomega.Expect(CanInvite(managerEstOne, ptrInt64(1)).Allowed).To(gomega.BeTrue())

			decision := CanInvite(managerEstOne, ptrInt64(2))
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonNotYourEstablishment))
		})

		ginkgo.It("should deny managers inviting without an establishment", func() {
			gomega.Expect(CanInvite(managerEstOne, nil).Allowed).To(gomega.BeFalse())
		})

		ginkgo.It("should deny employees entirely", func() {
			decision := CanInvite(employeeEstOne, ptrInt64(1))
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonManagerOrAdminRequired))
		})
	})

	ginkgo.Describe("CanListProfiles", func() {
		ginkgo.It("should let admins list any scope", func() {
			gomega.Expect(CanListProfiles(admin, nil).Allowed).To(gomega.BeTrue())
			gomega.Expect(CanListProfiles(admin, ptrInt64(9)).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should let managers list their own establishment", func() {
			gomega.Expect(CanListProfiles(managerEstOne, ptrInt64(1)).Allowed).To(gomega.BeTrue())
			gomega.Expect(CanListProfiles(managerEstOne, nil).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should deny managers listing another establishment", func() {
			gomega.Expect(CanListProfiles(managerEstOne, ptrInt64(2)).Allowed).To(gomega.BeFalse())
		})

		ginkgo.It("should deny employees", func() {
			gomega.Expect(CanListProfiles(employeeEstOne, ptrInt64(1)).Allowed).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CanManageSchedule", func() {
		ginkgo.It("should let admins manage any establishment", func() {
			gomega.Expect(CanManageSchedule(admin, ptrInt64(3)).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should scope managers to their establishment", func() {
			gomega.Expect(CanManageSchedule(managerEstOne, ptrInt64(1)).Allowed).To(gomega.BeTrue())
			gomega.Expect(CanManageSchedule(managerEstOne, ptrInt64(2)).Allowed).To(gomega.BeFalse())
		})

		ginkgo.It("should deny employees", func() {
			decision := CanManageSchedule(employeeEstOne, ptrInt64(1))
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonManagerOrAdminRequired))
		})
	})

	ginkgo.Describe("CanViewSchedule", func() {
		ginkgo.It("should let any member view their establishment's planning", func() {
			gomega.Expect(CanViewSchedule(employeeEstOne, ptrInt64(1)).Allowed).To(gomega.BeTrue())
			gomega.Expect(CanViewSchedule(managerEstOne, ptrInt64(1)).Allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should deny reads across establishments", func() {
			gomega.Expect(CanViewSchedule(employeeEstOne, ptrInt64(2)).Allowed).To(gomega.BeFalse())
		})

		ginkgo.It("should let admins view anything", func() {
			gomega.Expect(CanViewSchedule(admin, ptrInt64(2)).Allowed).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("CanCreateEstablishment", func() {
		ginkgo.It("should be admin only", func() {
			gomega.Expect(CanCreateEstablishment(admin).Allowed).To(gomega.BeTrue())

			decision := CanCreateEstablishment(managerEstOne)
			gomega.Expect(decision.Allowed).To(gomega.BeFalse())
			gomega.Expect(decision.Reason).To(gomega.Equal(ReasonAdminRequired))
		})
	})

	ginkgo.Describe("establishment matching", func() {
		ginkgo.It("should never match when either side is unassigned", func() {
			// Two accounts with no establishment do not share one.
			target := ProfileRef{ID: 10, Role: RoleEmployee, EstablishmentID: nil}
			gomega.Expect(CanReadProfile(unassignedActor, target).Allowed).To(gomega.BeFalse())
			gomega.Expect(CanManageSchedule(unassignedActor, nil).Allowed).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("Decision.Err", func() {
		ginkgo.It("should map a permit to nil", func() {
			gomega.Expect(Permit().Err()).To(gomega.Succeed())
		})

		ginkgo.It("should map a deny to a 403 carrying the reason", func() {
			err := Deny(ReasonAdminRequired).Err()
			gomega.Expect(err).To(gomega.HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(appErr.Details).To(gomega.Equal(map[string]string{"reason": ReasonAdminRequired}))
		})
	})
})
