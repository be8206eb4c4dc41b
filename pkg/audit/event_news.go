package audit

import "fmt"

// NewsEvent represents news being published, deleted or synced
type NewsEvent struct {
	UserID       int64
	ClientIP     string
	Operation    string // "publish", "delete", "sync"
	NewsID       int64
	Title        string
	Count        int
	Success      bool
	ErrorMessage string
}

func (e NewsEvent) MessageID() string {
	return "news"
}

func (e NewsEvent) Message() string {
	who := userRef(e.UserID)
	switch {
	case !e.Success:
		return withError(fmt.Sprintf("%s news %s failed", who, e.Operation), false, e.ErrorMessage)
	case e.Operation == "sync":
		return fmt.Sprintf("%s synced %d news items", who, e.Count)
	case e.Title != "":
		return fmt.Sprintf("%s news %s %d %q", who, e.Operation, e.NewsID, e.Title)
	}
	return fmt.Sprintf("%s news %s %d", who, e.Operation, e.NewsID)
}

func (e NewsEvent) Severity() Severity {
	return severityFor(e.Success)
}

func (e NewsEvent) Facility() int {
	return FacilityAuth
}

func (e NewsEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.UserID, e.ClientIP, e.Operation, e.Success)
	if e.Operation == "sync" {
		sd[SDIDSubject] = map[string]string{"count": fmt.Sprint(e.Count)}
	} else {
		sd[SDIDSubject] = map[string]string{"id": fmt.Sprint(e.NewsID)}
	}
	return sd
}
