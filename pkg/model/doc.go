// Package model defines the database models for the portal.
//
// Each type maps one table created by the migrations in db/migrations.
// JSON tags follow the wire format the web client expects, so models are
// returned from handlers directly.
//
// # Tables
//
//   - users: teachers and administrators
//   - plans_history: generated lesson plans, metadata kept as JSON text
//   - settings: key/value configuration, smtp_pass sealed at rest
//   - curriculum: classe / disciplina / tema / subtema rows with a JSON array of sumarios
//   - students, calendar_events, questions_bank: per-teacher classroom data
//   - news: portal announcements, optionally AI generated and expiring
//   - feedback, community_plans: teacher submissions awaiting moderation
package model
