package i18n

const (
	KeyReasonSkills           = "match.reason.skills"
	KeyReasonLocation         = "match.reason.location"
	KeyReasonLocationAdjacent = "match.reason.location_adjacent"
	KeyReasonExpEntry         = "match.reason.experience.entry"
	KeyReasonExpJunior        = "match.reason.experience.junior"
	KeyReasonExpMid           = "match.reason.experience.mid"
	KeyReasonExpSenior        = "match.reason.experience.senior"
	KeyReasonVisaSponsorship  = "match.reason.visa_sponsorship"
	KeyReasonVisaSettled      = "match.reason.visa_settled"
	KeyReasonSalary           = "match.reason.salary"
	KeyReasonError            = "match.reason.error"

	KeyNoActiveJobs       = "match.empty.jobs"
	KeyNoJobseekers       = "match.empty.jobseekers"
	KeyJobseekerNotFound  = "error.jobseeker_not_found"
	KeyJobNotFound        = "error.job_not_found"
	KeyMatchingFailed     = "error.matching_failed"
	KeyStatisticsFailed   = "error.statistics_failed"
	KeyInternalError      = "error.internal"
	KeyTooManyRequests    = "error.too_many_requests"
	KeyUnauthorized       = "error.unauthorized"
	KeyForbidden          = "error.forbidden"
	KeyEmailRegistered    = "auth.email_registered"
	KeyInvalidCredentials = "auth.invalid_credentials"
	KeyAccountNotApproved = "auth.account_not_approved"
	KeyAlreadyApplied     = "application.already_applied"
	KeyApplySuccess       = "application.success"
	KeyOnlyJobseekers     = "application.only_jobseekers"
	KeyContactReceived    = "contact.received"
)

var catalog = map[Locale]map[string]string{
	KO: {
		KeyReasonSkills:           "요구 스킬 매칭: %s",
		KeyReasonLocation:         "희망 근무지역 일치: %s",
		KeyReasonLocationAdjacent: "인접 지역 근무 가능: %s",
		KeyReasonExpEntry:         "신입/초급 경력 요구사항 충족",
		KeyReasonExpJunior:        "주니어 경력 요구사항 충족",
		KeyReasonExpMid:           "중급 경력 요구사항 충족",
		KeyReasonExpSenior:        "시니어 경력 요구사항 충족",
		KeyReasonVisaSponsorship:  "비자 스폰서십 제공",
		KeyReasonVisaSettled:      "취업 가능 비자 보유: %s",
		KeyReasonSalary:           "희망 연봉 범위 일치",
		KeyReasonError:            "계산 오류",

		KeyNoActiveJobs:       "현재 활성 구인공고가 없습니다.",
		KeyNoJobseekers:       "현재 등록된 구직자가 없습니다.",
		KeyJobseekerNotFound:  "구직자 정보를 찾을 수 없습니다.",
		KeyJobNotFound:        "구인공고를 찾을 수 없습니다.",
		KeyMatchingFailed:     "매칭 중 오류가 발생했습니다.",
		KeyStatisticsFailed:   "통계 조회 중 오류가 발생했습니다.",
		KeyInternalError:      "서버 오류가 발생했습니다.",
		KeyTooManyRequests:    "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
		KeyUnauthorized:       "로그인이 필요합니다.",
		KeyForbidden:          "접근 권한이 없습니다.",
		KeyEmailRegistered:    "이미 등록된 이메일입니다. 다른 이메일을 사용해주세요.",
		KeyInvalidCredentials: "이메일 또는 비밀번호가 올바르지 않습니다.",
		KeyAccountNotApproved: "계정이 승인되지 않았습니다.",
		KeyAlreadyApplied:     "이미 지원한 공고입니다.",
		KeyApplySuccess:       "지원이 완료되었습니다!",
		KeyOnlyJobseekers:     "구직자만 지원할 수 있습니다.",
		KeyContactReceived:    "문의가 접수되었습니다.",
	},
	EN: {
		KeyReasonSkills:           "Required skills matched: %s",
		KeyReasonLocation:         "Preferred work location matches: %s",
		KeyReasonLocationAdjacent: "Nearby region: %s",
		KeyReasonExpEntry:         "Meets entry-level experience requirement",
		KeyReasonExpJunior:        "Meets junior experience requirement",
		KeyReasonExpMid:           "Meets mid-level experience requirement",
		KeyReasonExpSenior:        "Meets senior experience requirement",
		KeyReasonVisaSponsorship:  "Visa sponsorship offered",
		KeyReasonVisaSettled:      "Holds a work-eligible visa: %s",
		KeyReasonSalary:           "Salary expectation within range",
		KeyReasonError:            "Calculation error",

		KeyNoActiveJobs:       "There are no active job postings.",
		KeyNoJobseekers:       "There are no registered jobseekers.",
		KeyJobseekerNotFound:  "Jobseeker not found.",
		KeyJobNotFound:        "Job posting not found.",
		KeyMatchingFailed:     "An error occurred while matching.",
		KeyStatisticsFailed:   "An error occurred while loading statistics.",
		KeyInternalError:      "A server error occurred.",
		KeyTooManyRequests:    "Too many requests. Please try again later.",
		KeyUnauthorized:       "Login required.",
		KeyForbidden:          "You do not have permission.",
		KeyEmailRegistered:    "This email is already registered. Please use another email.",
		KeyInvalidCredentials: "Invalid email or password.",
		KeyAccountNotApproved: "Your account has not been approved.",
		KeyAlreadyApplied:     "You have already applied to this posting.",
		KeyApplySuccess:       "Your application has been submitted!",
		KeyOnlyJobseekers:     "Only jobseekers can apply.",
		KeyContactReceived:    "Your inquiry has been received.",
	},
	JA: {
		KeyReasonSkills:           "必要スキル一致: %s",
		KeyReasonLocation:         "希望勤務地一致: %s",
		KeyReasonLocationAdjacent: "近隣地域: %s",
		KeyReasonExpEntry:         "新卒・初級の経験要件を満たしています",
		KeyReasonExpJunior:        "ジュニアの経験要件を満たしています",
		KeyReasonExpMid:           "中級の経験要件を満たしています",
		KeyReasonExpSenior:        "シニアの経験要件を満たしています",
		KeyReasonVisaSponsorship:  "ビザスポンサーあり",
		KeyReasonVisaSettled:      "就労可能なビザを保有: %s",
		KeyReasonSalary:           "希望年収が範囲内",
		KeyReasonError:            "計算エラー",
	},
	VI: {
		KeyReasonSkills:           "Kỹ năng phù hợp: %s",
		KeyReasonLocation:         "Khu vực làm việc mong muốn phù hợp: %s",
		KeyReasonLocationAdjacent: "Khu vực lân cận: %s",
		KeyReasonExpEntry:         "Đáp ứng yêu cầu kinh nghiệm mới/cơ bản",
		KeyReasonExpJunior:        "Đáp ứng yêu cầu kinh nghiệm junior",
		KeyReasonExpMid:           "Đáp ứng yêu cầu kinh nghiệm trung cấp",
		KeyReasonExpSenior:        "Đáp ứng yêu cầu kinh nghiệm senior",
		KeyReasonVisaSponsorship:  "Có bảo lãnh visa",
		KeyReasonVisaSettled:      "Có visa được phép làm việc: %s",
		KeyReasonSalary:           "Mức lương mong muốn phù hợp",
		KeyReasonError:            "Lỗi tính toán",
	},
	ZH: {
		KeyReasonSkills:           "技能匹配: %s",
		KeyReasonLocation:         "期望工作地点一致: %s",
		KeyReasonLocationAdjacent: "邻近地区: %s",
		KeyReasonExpEntry:         "符合新人/初级经验要求",
		KeyReasonExpJunior:        "符合初级经验要求",
		KeyReasonExpMid:           "符合中级经验要求",
		KeyReasonExpSenior:        "符合高级经验要求",
		KeyReasonVisaSponsorship:  "提供签证担保",
		KeyReasonVisaSettled:      "持有可就业签证: %s",
		KeyReasonSalary:           "期望薪资在范围内",
		KeyReasonError:            "计算错误",
	},
}
