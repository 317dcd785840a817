package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/osc-dev/contest-api/internal/models"
)

// Resolver bundles the services the schema dispatches to.
type Resolver struct {
	Auth     authService
	Tasks    taskService
	Students studentService
	Mentors  mentorService
	Admin    adminService
	Runs     runService
	Email    emailService
}

// NewSchema wires every query and mutation of the contest API into an
// executable schema. Field and argument names match the contract the
// frontend was built against.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"task": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"taskId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveTask,
			},
			"allTasks": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Resolve: r.resolveAllTasks,
			},
			"freeTasks": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Resolve: r.resolveFreeTasks,
			},
			"takenTasks": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(taskType))),
				Resolve: r.resolveTakenTasks,
			},
			"student": &graphql.Field{
				Type: graphql.NewNonNull(studentType),
				Args: graphql.FieldConfigArgument{
					"studentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveStudent,
			},
			"students": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(studentType))),
				Resolve: r.resolveStudents,
			},
			"mentor": &graphql.Field{
				Type: graphql.NewNonNull(mentorType),
				Args: graphql.FieldConfigArgument{
					"mentorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveMentor,
			},
			"mentors": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(mentorType))),
				Resolve: r.resolveMentors,
			},
			"login": &graphql.Field{
				Type: authDataType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"uid":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"isMentor": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: r.resolveLogin,
			},
			"verify": &graphql.Field{
				Type:    authDataType,
				Resolve: r.resolveVerify,
			},
			"studentEmails": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.String)),
				Args: graphql.FieldConfigArgument{
					"mentorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveStudentEmails,
			},
			"allStudentEmails": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.String)),
				Resolve: r.resolveAllStudentEmails,
			},
			"allMentorEmails": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.String)),
				Resolve: r.resolveAllMentorEmails,
			},
			"sendVerificationEmail": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"recipient": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"emailType": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"text":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveSendVerificationEmail,
			},
			"run": &graphql.Field{
				Type:    runType,
				Resolve: r.resolveRun,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"taskInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInputType)},
				},
				Resolve: r.resolveCreateTask,
			},
			"updateTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"taskInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(taskInputType)},
				},
				Resolve: r.resolveUpdateTask,
			},
			"registerTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"studentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"taskId":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveRegisterTask,
			},
			"unregisterTask": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"studentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"taskId":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveUnregisterTask,
			},
			"deleteTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"taskId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveDeleteTask,
			},
			"editTaskProgress": &graphql.Field{
				Type: graphql.NewNonNull(taskType),
				Args: graphql.FieldConfigArgument{
					"taskId":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"isSolved":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
					"isBeingSolved": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: r.resolveEditTaskProgress,
			},
			"createStudent": &graphql.Field{
				Type: studentType,
				Args: graphql.FieldConfigArgument{
					"studentInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(studentInputType)},
				},
				Resolve: r.resolveCreateStudent,
			},
			"createMentor": &graphql.Field{
				Type: mentorType,
				Args: graphql.FieldConfigArgument{
					"mentorInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(mentorInputType)},
				},
				Resolve: r.resolveCreateMentor,
			},
			"changeMentorRights": &graphql.Field{
				Type: graphql.NewNonNull(mentorType),
				Args: graphql.FieldConfigArgument{
					"mentorId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"isVerified": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
					"isAdmin":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: r.resolveChangeMentorRights,
			},
			"unregisterAllStudents": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(unregDataType)),
				Resolve: r.resolveUnregisterAllStudents,
			},
			"setRun": &graphql.Field{
				Type: runType,
				Args: graphql.FieldConfigArgument{
					"runInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(runInputType)},
				},
				Resolve: r.resolveSetRun,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func viewer(p graphql.ResolveParams) *models.Claims {
	return models.ClaimsFromContext(p.Context)
}

func stringArg(p graphql.ResolveParams, name string) string {
	value, _ := p.Args[name].(string)
	return value
}

func boolArg(p graphql.ResolveParams, name string) bool {
	value, _ := p.Args[name].(bool)
	return value
}

func objectArg(p graphql.ResolveParams, name string) map[string]interface{} {
	value, _ := p.Args[name].(map[string]interface{})
	return value
}

func stringField(input map[string]interface{}, name string) string {
	value, _ := input[name].(string)
	return value
}
