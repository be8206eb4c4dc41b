package audit

import "strconv"

// userRef renders a user id for messages; 0 is the background job runner.
func userRef(id int64) string {
	if id == 0 {
		return "system"
	}
	return "user " + strconv.FormatInt(id, 10)
}

func severityFor(success bool) Severity {
	if success {
		return SeverityInfo
	}
	return SeverityWarning
}

func resultFor(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func withError(msg string, success bool, errMsg string) string {
	if !success && errMsg != "" {
		return msg + ": " + errMsg
	}
	return msg
}

// actionData builds the structured data shared by every admin event.
func actionData(userID int64, clientIP, operation string, success bool) map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(userID, 10),
		},
		SDIDClient: {
			"ip": clientIP,
		},
		SDIDAction: {
			"operation": operation,
			"result":    resultFor(success),
		},
	}
}
