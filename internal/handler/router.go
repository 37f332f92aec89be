package handler

import "github.com/gin-gonic/gin"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Instructors *InstructorHandler
	Courses     *CourseHandler
	Subjects    *SubjectHandler
	Students    *StudentHandler
	Holidays    *HolidayHandler
	Timetables  *TimetableHandler
}

// RegisterRoutes mounts every API route group under the given prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	instructors := api.Group("/instructors")
	{
		instructors.GET("", h.Instructors.List)
		instructors.POST("", h.Instructors.Create)
		instructors.GET("/:code", h.Instructors.Get)
		instructors.PUT("/:code", h.Instructors.Update)
		instructors.DELETE("/:code", h.Instructors.Delete)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", h.Courses.List)
		courses.POST("", h.Courses.Create)
		courses.GET("/:code", h.Courses.Get)
		courses.PUT("/:code", h.Courses.Update)
		courses.DELETE("/:code", h.Courses.Delete)
	}

	subjects := api.Group("/subjects")
	{
		subjects.GET("", h.Subjects.List)
		subjects.POST("", h.Subjects.Create)
		subjects.GET("/:code", h.Subjects.Get)
		subjects.PUT("/:code", h.Subjects.Update)
		subjects.DELETE("/:code", h.Subjects.Delete)
	}

	students := api.Group("/students")
	{
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.GET("/:id", h.Students.Get)
		students.PUT("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
	}

	holidays := api.Group("/holidays")
	{
		holidays.GET("", h.Holidays.List)
		holidays.POST("", h.Holidays.Create)
		holidays.DELETE("/:id", h.Holidays.Delete)
	}

	timetables := api.Group("/timetables")
	{
		timetables.POST("/generate", h.Timetables.Generate)
		timetables.POST("", h.Timetables.Save)
		timetables.GET("/:courseCode", h.Timetables.Get)
		timetables.DELETE("/:courseCode", h.Timetables.Delete)
		timetables.PUT("/:courseCode/slots", h.Timetables.EditSlot)
		timetables.POST("/:courseCode/swap-instructors", h.Timetables.SwapInstructors)
	}
}
