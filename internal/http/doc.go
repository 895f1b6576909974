// Package http exposes the DevMentor REST API.
//
// The router (gorilla/mux) serves JSON under /api:
//   - POST /api/auth/register, POST /api/auth/login: create or verify an account.
//     The user is returned without its password hash; a session token is
//     surfaced via the `X-Session-Token` header.
//   - GET /api/auth/me: resolves a token from the Authorization bearer or
//     `X-Session-Token` header to its user.
//   - GET /api/users/mentors, GET/PATCH /api/users/{id}: user directory and profiles.
//   - GET/POST /api/courses, GET/PATCH /api/courses/{id},
//     GET /api/courses/mentor/{mentorId}: the course catalog. Listing accepts
//     optional `category` and `level` query filters.
//   - POST /api/enrollments, GET /api/enrollments/student/{studentId},
//     PATCH /api/enrollments/{id}/progress: enrollment and progress tracking.
//   - POST /api/messages, GET /api/messages/{senderId}/{receiverId},
//     PATCH /api/messages/{id}/read: direct messages.
//   - POST /api/sessions, GET /api/sessions/student/{studentId},
//     GET /api/sessions/mentor/{mentorId}, PATCH /api/sessions/{id}/status:
//     mentoring sessions.
//
// Every failure body is {"message": string}. Conflicts and malformed input
// are reported as 400, unknown resources as 404, credential failures as 401.
// Request/response DTOs live in dto.go.
package http
