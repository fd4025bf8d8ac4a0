package handler

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "campus.v1.PortalService"

// PortalServer is the server API for campus.v1.PortalService.
type PortalServer interface {
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*AppointmentResponse, error)
	GetAppointment(context.Context, *IDRequest) (*AppointmentResponse, error)
	UpdateAppointment(context.Context, *UpdateAppointmentRequest) (*AppointmentResponse, error)
	DeleteAppointment(context.Context, *IDRequest) (*DeleteResponse, error)
	SetAppointmentStatus(context.Context, *SetAppointmentStatusRequest) (*AppointmentResponse, error)
	ListAppointments(context.Context, *Empty) (*ListAppointmentsResponse, error)

	CreateIssue(context.Context, *CreateIssueRequest) (*IssueResponse, error)
	GetIssue(context.Context, *IDRequest) (*IssueResponse, error)
	UpdateIssue(context.Context, *UpdateIssueRequest) (*IssueResponse, error)
	DeleteIssue(context.Context, *IDRequest) (*DeleteResponse, error)
	UpdateIssueStatus(context.Context, *UpdateIssueStatusRequest) (*IssueResponse, error)
	ListIssues(context.Context, *Empty) (*ListIssuesResponse, error)
	ListIssueCategories(context.Context, *Empty) (*ListIssueCategoriesResponse, error)

	CreateNotification(context.Context, *CreateNotificationRequest) (*NotificationResponse, error)
	UpdateNotification(context.Context, *UpdateNotificationRequest) (*NotificationResponse, error)
	DeleteNotification(context.Context, *IDRequest) (*DeleteResponse, error)
	MarkNotificationRead(context.Context, *IDRequest) (*NotificationResponse, error)
	MarkAllNotificationsRead(context.Context, *Empty) (*MarkAllNotificationsReadResponse, error)
	ListNotifications(context.Context, *Empty) (*ListNotificationsResponse, error)
	UnreadCount(context.Context, *Empty) (*UnreadCountResponse, error)

	ListLecturers(context.Context, *Empty) (*ListLecturersResponse, error)
	GetTimetable(context.Context, *GetTimetableRequest) (*GetTimetableResponse, error)
}

// unary builds the method descriptor for one PortalServer method, in the
// shape protoc-gen-go-grpc emits.
func unary[Req, Resp any](name string, call func(PortalServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PortalServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(PortalServer), ctx, req.(*Req))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PortalServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateAppointment", PortalServer.CreateAppointment),
		unary("GetAppointment", PortalServer.GetAppointment),
		unary("UpdateAppointment", PortalServer.UpdateAppointment),
		unary("DeleteAppointment", PortalServer.DeleteAppointment),
		unary("SetAppointmentStatus", PortalServer.SetAppointmentStatus),
		unary("ListAppointments", PortalServer.ListAppointments),

		unary("CreateIssue", PortalServer.CreateIssue),
		unary("GetIssue", PortalServer.GetIssue),
		unary("UpdateIssue", PortalServer.UpdateIssue),
		unary("DeleteIssue", PortalServer.DeleteIssue),
		unary("UpdateIssueStatus", PortalServer.UpdateIssueStatus),
		unary("ListIssues", PortalServer.ListIssues),
		unary("ListIssueCategories", PortalServer.ListIssueCategories),

		unary("CreateNotification", PortalServer.CreateNotification),
		unary("UpdateNotification", PortalServer.UpdateNotification),
		unary("DeleteNotification", PortalServer.DeleteNotification),
		unary("MarkNotificationRead", PortalServer.MarkNotificationRead),
		unary("MarkAllNotificationsRead", PortalServer.MarkAllNotificationsRead),
		unary("ListNotifications", PortalServer.ListNotifications),
		unary("UnreadCount", PortalServer.UnreadCount),

		unary("ListLecturers", PortalServer.ListLecturers),
		unary("GetTimetable", PortalServer.GetTimetable),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "campus/v1/portal.proto",
}

func RegisterPortalServer(s grpc.ServiceRegistrar, srv PortalServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Method returns the descriptor for a method name, as used by in-process
// dispatch.
func Method(name string) (grpc.MethodDesc, bool) {
	for _, m := range ServiceDesc.Methods {
		if m.MethodName == name {
			return m, true
		}
	}
	return grpc.MethodDesc{}, false
}
