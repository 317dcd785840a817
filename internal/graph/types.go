package graph

import "github.com/graphql-go/graphql"

// Object types mirror the wire contract the frontend depends on. Task,
// Mentor and Student reference each other, so the circular fields are
// attached in init after all three objects exist.

var taskType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Task",
	Fields: graphql.Fields{
		"_id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"details":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"link":          &graphql.Field{Type: graphql.String},
		"isSolved":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"isBeingSolved": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var mentorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Mentor",
	Fields: graphql.Fields{
		"_id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"uid":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"isVerified": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"isAdmin":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var studentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Student",
	Fields: graphql.Fields{
		"_id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"uid":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

func init() {
	taskType.AddFieldConfig("creator", &graphql.Field{Type: graphql.NewNonNull(mentorType)})
	taskType.AddFieldConfig("registeredStudent", &graphql.Field{Type: studentType})
	mentorType.AddFieldConfig("createdTasks", &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(taskType))})
	studentType.AddFieldConfig("registeredTask", &graphql.Field{Type: taskType})
}

var authDataType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthData",
	Fields: graphql.Fields{
		"userId":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"token":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"tokenExpiration": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"isMentor":        &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"isAdmin":         &graphql.Field{Type: graphql.Boolean},
		"isVerified":      &graphql.Field{Type: graphql.Boolean},
	},
})

var unregDataType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UnregData",
	Fields: graphql.Fields{
		"studentId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"taskId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
	},
})

var runType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Run",
	Fields: graphql.Fields{
		"_id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"deadline": &graphql.Field{Type: graphql.String},
	},
})

var taskInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "TaskInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"_id":     &graphql.InputObjectFieldConfig{Type: graphql.ID},
		"title":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"details": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"link":    &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var studentInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "StudentInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"uid":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var mentorInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "MentorInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"uid":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var runInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "RunInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"deadline": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})
