package model

// Role is the closed set of caller kinds a token can carry in its "tipo" claim.
type Role string

const (
	RoleSchool   Role = "escola"
	RoleStudent  Role = "crianca"
	RoleGuardian Role = "responsavel"
)

// Capability names an action a route requires.
type Capability string

const (
	// CapabilityManageAccount allows changing the caller's own credentials.
	CapabilityManageAccount Capability = "conta:gerenciar"

	// CapabilityReadRoster allows listing the caller's classes and students.
	CapabilityReadRoster Capability = "alunos:ler"

	// CapabilityAssignContent allows creating quizzes, tasks and messages.
	CapabilityAssignContent Capability = "conteudo:atribuir"

	// CapabilityReadReports allows dashboard statistics and reports.
	CapabilityReadReports Capability = "relatorios:ler"
)

var roleCapabilities = map[Role][]Capability{
	RoleSchool: {
		CapabilityManageAccount,
		CapabilityReadRoster,
		CapabilityAssignContent,
		CapabilityReadReports,
	},
	RoleStudent:  {},
	RoleGuardian: {},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether r grants capability c.
func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == c {
			return true
		}
	}
	return false
}
